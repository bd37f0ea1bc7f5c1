// Package notify delivers pull-request notifications as Telegram direct
// messages. Delivery failures are logged and swallowed; the webhook response
// contract never depends on downstream delivery.
package notify

import (
	"fmt"
	"log"
	"time"

	"prnotify/internal/cache"
	"prnotify/internal/models"

	"github.com/PaulSonOfLars/gotgbot/v2"
)

const contextTTL = 48 * time.Hour

type Dispatcher struct {
	Bot      *gotgbot.Bot
	Contexts *cache.Cache[string, models.MessageContext]
}

func NewDispatcher(bot *gotgbot.Bot, contexts *cache.Cache[string, models.MessageContext]) *Dispatcher {
	return &Dispatcher{Bot: bot, Contexts: contexts}
}

// PullRequestOpened sends the notification to the user's private chat and
// records the message context so a reply can be threaded back to the PR.
func (d *Dispatcher) PullRequestOpened(userID int64, p *models.PullRequestPayload) {
	msg, markup := FormatPullRequestOpened(p)

	preview := &gotgbot.LinkPreviewOptions{IsDisabled: true}
	if p.Sender.AvatarURL != "" {
		// Surface the sender's avatar as the preview thumbnail.
		preview = &gotgbot.LinkPreviewOptions{
			Url:              p.Sender.AvatarURL,
			PreferSmallMedia: true,
		}
	}

	sent, err := d.Bot.SendMessage(userID, msg, &gotgbot.SendMessageOpts{
		ParseMode:          "MarkdownV2",
		LinkPreviewOptions: preview,
		ReplyMarkup:        markup,
	})
	if err != nil {
		log.Printf("Failed to deliver PR notification to user %d (%s/%s#%d): %v",
			userID, p.Repository.Owner.Login, p.Repository.Name, p.PullRequest.Number, err)
		return
	}

	d.Contexts.Set(fmt.Sprintf("%d:%d", userID, sent.MessageId), models.MessageContext{
		Owner:    p.Repository.Owner.Login,
		Repo:     p.Repository.Name,
		PRNumber: p.PullRequest.Number,
	}, contextTTL)
}
