package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gh "prnotify/internal/github"
	"prnotify/internal/registry"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

const apiTimeout = 10 * time.Second

type CommandHandler struct {
	Registry   *registry.Registry
	Handshake  *gh.Handshake
	Subscriber *gh.Subscriber
}

func NewCommandHandler(reg *registry.Registry, handshake *gh.Handshake, subscriber *gh.Subscriber) *CommandHandler {
	return &CommandHandler{
		Registry:   reg,
		Handshake:  handshake,
		Subscriber: subscriber,
	}
}

func (h *CommandHandler) Start(b *gotgbot.Bot, ctx *ext.Context) error {
	msg := `<b>Welcome to the PR Notify Bot!</b> 🤖

I send you a direct message whenever a pull request is opened on a repository you watch.

<b>Get Started:</b>
1. Use /connect to link your GitHub account.
2. Use /watch owner repo to watch a repository.

Need help? Type /help for a full list of commands.`
	_, err := ctx.EffectiveMessage.Reply(b, msg, &gotgbot.SendMessageOpts{ParseMode: "HTML"})
	return err
}

func (h *CommandHandler) Help(b *gotgbot.Bot, ctx *ext.Context) error {
	msg := `<b>PR Notify Bot Commands:</b>

<b>Account</b>
/connect - Link your GitHub account (<i>private chat only</i>)
/logout - Forget your GitHub credential

<b>Repositories</b>
/watch owner repo - Watch a repository for opened pull requests
/unwatch owner repo - Stop watching a repository
/repos - List watched repositories

You can also reply to a notification to post your reply as a comment on the pull request.`

	_, err := ctx.EffectiveMessage.Reply(b, msg, &gotgbot.SendMessageOpts{ParseMode: "HTML", LinkPreviewOptions: &gotgbot.LinkPreviewOptions{IsDisabled: true}})
	return err
}

func (h *CommandHandler) Connect(b *gotgbot.Bot, ctx *ext.Context) error {
	if ctx.EffectiveChat.Type != gotgbot.ChatTypePrivate {
		_, err := ctx.EffectiveMessage.Reply(b, "⚠️ The /connect command can only be used in a private chat with the bot.", nil)
		return err
	}

	url, err := h.Handshake.Begin(ctx.EffectiveUser.Id)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Please [connect your GitHub account](%s) to enable notifications and automatic webhook setup.", url)
	_, err = ctx.EffectiveMessage.Reply(b, msg, &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return err
}

func (h *CommandHandler) Watch(b *gotgbot.Bot, ctx *ext.Context) error {
	if ctx.EffectiveChat.Type != gotgbot.ChatTypePrivate {
		_, err := ctx.EffectiveMessage.Reply(b, "⚠️ Please manage your watched repositories in a private chat with the bot.", nil)
		return err
	}

	owner, name, ok := repoArgs(ctx.Args())
	if !ok {
		_, err := ctx.EffectiveMessage.Reply(b, "Usage: /watch owner repo", nil)
		return err
	}

	tctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	err := h.Subscriber.Watch(tctx, ctx.EffectiveUser.Id, owner, name)
	switch {
	case errors.Is(err, gh.ErrNotLinked):
		_, err = ctx.EffectiveMessage.Reply(b, "Please /connect your GitHub account first.", nil)
		return err
	case errors.Is(err, gh.ErrRepoNotFound):
		msg := "❌ <b>Repository not found.</b>\nPlease check the name and ensure you have access."
		_, err = ctx.EffectiveMessage.Reply(b, msg, &gotgbot.SendMessageOpts{ParseMode: "HTML"})
		return err
	case errors.Is(err, gh.ErrWebhookProvision):
		msg := fmt.Sprintf("⚠️ <b>Webhook creation failed for %s/%s.</b>\nThe repository was added to your watch list, but notifications will not arrive until a webhook exists. You need admin access to the repository; fix the hook and /watch again.", owner, name)
		_, err = ctx.EffectiveMessage.Reply(b, msg, &gotgbot.SendMessageOpts{ParseMode: "HTML"})
		return err
	case err != nil:
		_, err = ctx.EffectiveMessage.Reply(b, "Something went wrong. Please try again.", nil)
		return err
	}

	msg := fmt.Sprintf("Repository <b>%s/%s</b> is now watched. You will be notified when a pull request is opened.", owner, name)
	_, err = ctx.EffectiveMessage.Reply(b, msg, &gotgbot.SendMessageOpts{ParseMode: "HTML"})
	return err
}

func (h *CommandHandler) Unwatch(b *gotgbot.Bot, ctx *ext.Context) error {
	owner, name, ok := repoArgs(ctx.Args())
	if !ok {
		_, err := ctx.EffectiveMessage.Reply(b, "Usage: /unwatch owner repo", nil)
		return err
	}

	tctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	if err := h.Subscriber.Unwatch(tctx, ctx.EffectiveUser.Id, owner, name); err != nil {
		_, err = ctx.EffectiveMessage.Reply(b, "You are not watching that repository.", nil)
		return err
	}

	_, err := ctx.EffectiveMessage.Reply(b, fmt.Sprintf("Repository <b>%s/%s</b> removed.", owner, name), &gotgbot.SendMessageOpts{ParseMode: "HTML"})
	return err
}

func (h *CommandHandler) Repos(b *gotgbot.Bot, ctx *ext.Context) error {
	sub, ok := h.Registry.Get(ctx.EffectiveUser.Id)
	if !ok || len(sub.Repos) == 0 {
		_, err := ctx.EffectiveMessage.Reply(b, "No repositories watched. Use /watch owner repo first.", nil)
		return err
	}

	var msg strings.Builder
	msg.WriteString("<b>Watched Repositories:</b>\n")
	for _, r := range sub.Repos {
		msg.WriteString(fmt.Sprintf("• <b>%s/%s</b>", r.Owner, r.Name))
		if r.HookID == 0 {
			msg.WriteString(" (webhook missing)")
		}
		msg.WriteString("\n")
	}

	_, err := ctx.EffectiveMessage.Reply(b, msg.String(), &gotgbot.SendMessageOpts{ParseMode: "HTML"})
	return err
}

func (h *CommandHandler) Logout(b *gotgbot.Bot, ctx *ext.Context) error {
	if !h.Registry.ClearToken(ctx.EffectiveUser.Id) {
		_, err := ctx.EffectiveMessage.Reply(b, "No GitHub account is linked.", nil)
		return err
	}
	_, err := ctx.EffectiveMessage.Reply(b, "✅ You have been logged out. Use /connect to reconnect.", nil)
	return err
}

// repoArgs accepts "/cmd owner repo" and "/cmd owner/repo".
func repoArgs(args []string) (owner, name string, ok bool) {
	switch len(args) {
	case 3:
		owner, name = args[1], args[2]
	case 2:
		owner, name, _ = strings.Cut(args[1], "/")
	default:
		return "", "", false
	}

	if owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return owner, name, true
}
