package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"prnotify/internal/bot/commands"
	"prnotify/internal/bot/notify"
	"prnotify/internal/cache"
	"prnotify/internal/config"
	"prnotify/internal/github"
	"prnotify/internal/models"
	"prnotify/internal/registry"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
)

func main() {
	cfg := config.Load()

	reg := registry.New()
	oauth := github.NewOAuth(cfg)
	clientFactory := github.NewClientFactory()
	pendingAuths := cache.New[string, int64]()
	contextCache := cache.New[string, models.MessageContext]()

	handshake := github.NewHandshake(oauth, pendingAuths, reg, clientFactory, cfg.EncryptionKey)
	subscriber := github.NewSubscriber(cfg, reg, clientFactory)

	b, err := gotgbot.NewBot(cfg.TelegramToken, nil)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Printf("Error processing update: %v", err)
			return ext.DispatcherActionNoop
		},
	})
	updater := ext.NewUpdater(dispatcher, nil)

	cmdHandler := commands.NewCommandHandler(reg, handshake, subscriber)
	dispatcher.AddHandler(handlers.NewCommand("start", cmdHandler.Start))
	dispatcher.AddHandler(handlers.NewCommand("connect", cmdHandler.Connect))
	dispatcher.AddHandler(handlers.NewCommand("watch", cmdHandler.Watch))
	dispatcher.AddHandler(handlers.NewCommand("unwatch", cmdHandler.Unwatch))
	dispatcher.AddHandler(handlers.NewCommand("repos", cmdHandler.Repos))
	dispatcher.AddHandler(handlers.NewCommand("logout", cmdHandler.Logout))
	dispatcher.AddHandler(handlers.NewCommand("help", cmdHandler.Help))

	replyHandler := commands.NewReplyHandler(cfg, reg, clientFactory, contextCache)
	dispatcher.AddHandler(handlers.NewMessage(func(msg *gotgbot.Message) bool {
		if msg.GetText() == "" {
			return false
		}

		ents := msg.GetEntities()
		if len(ents) != 0 && ents[0].Offset == 0 && ents[0].Type == "bot_command" {
			return false
		}

		return msg.ReplyToMessage != nil
	}, replyHandler.HandleReply))

	go func() {
		err = updater.StartPolling(b, &ext.PollingOpts{
			DropPendingUpdates: true,
			GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
				Timeout: 9,
				RequestOpts: &gotgbot.RequestOpts{
					Timeout: time.Second * 10,
				},
			},
		})
		if err != nil {
			log.Fatalf("Failed to start polling: %v", err)
		}
	}()

	log.Printf("Bot started: @%s", b.User.Username)

	// Unredeemed authorization attempts and stale message contexts must not
	// accumulate forever.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			pendingAuths.Cleanup()
			contextCache.Cleanup()
		}
	}()

	notifier := notify.NewDispatcher(b, contextCache)
	router := github.NewRouter(reg, notifier)
	webhookServer := github.NewWebhookServer(cfg.GitHubWebhookSecret, router)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		html := fmt.Sprintf(`
		<html>
		<head><title>PR Notify Bot</title></head>
		<body style="font-family: sans-serif; text-align: center; padding: 50px;">
			<h1>PR Notify Bot</h1>
			<p>The bot is running successfully.</p>
			<p><a href="https://t.me/%s" style="text-decoration: none; background-color: #0088cc; color: white; padding: 10px 20px; border-radius: 5px;">Open in Telegram</a></p>
		</body>
		</html>`, b.User.Username)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	})

	http.HandleFunc("/webhook", webhookServer.Handler)

	http.HandleFunc("/github/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")

		if code == "" {
			http.Error(w, "Missing code", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		userID, login, err := handshake.Redeem(ctx, code, state)
		if err != nil {
			log.Printf("OAuth redemption failed: %v", err)
			if errors.Is(err, github.ErrInvalidState) {
				http.Error(w, "Invalid or expired state. Please restart linking from Telegram.", http.StatusInternalServerError)
				return
			}
			http.Error(w, "GitHub authentication failed. Please try again.", http.StatusInternalServerError)
			return
		}

		_, _ = b.SendMessage(userID, fmt.Sprintf("✅ GitHub account <b>%s</b> connected successfully! Use /watch to add a repository.", login), &gotgbot.SendMessageOpts{ParseMode: "HTML"})

		html := fmt.Sprintf(`
		<html>
		<head><title>Connected</title></head>
		<body style="font-family: sans-serif; text-align: center; padding: 50px;">
			<h1>Authentication Successful</h1>
			<p>Your GitHub account has been connected.</p>
			<script>
				window.opener = null;
				setTimeout(function() { window.close(); }, 1000);
				setTimeout(function() { window.location.href = "https://t.me/%s"; }, 2000);
			</script>
			<p>If the window does not close automatically, you can <a href="https://t.me/%s">return to Telegram</a>.</p>
		</body>
		</html>`, b.User.Username, b.User.Username)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	})

	log.Printf("Server listening on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
