package commands

import (
	"context"
	"fmt"
	"log"

	"prnotify/internal/cache"
	"prnotify/internal/config"
	gh "prnotify/internal/github"
	"prnotify/internal/models"
	"prnotify/internal/registry"
	"prnotify/internal/secrets"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/google/go-github/v80/github"
)

// ReplyHandler turns a reply to a notification message into a comment on the
// corresponding pull request.
type ReplyHandler struct {
	Config   *config.Config
	Registry *registry.Registry
	Factory  *gh.ClientFactory
	Contexts *cache.Cache[string, models.MessageContext]
}

func NewReplyHandler(cfg *config.Config, reg *registry.Registry, factory *gh.ClientFactory, contexts *cache.Cache[string, models.MessageContext]) *ReplyHandler {
	return &ReplyHandler{
		Config:   cfg,
		Registry: reg,
		Factory:  factory,
		Contexts: contexts,
	}
}

func (h *ReplyHandler) HandleReply(b *gotgbot.Bot, ctx *ext.Context) error {
	msg := ctx.EffectiveMessage
	if msg.ReplyToMessage == nil {
		return nil
	}

	key := fmt.Sprintf("%d:%d", ctx.EffectiveChat.Id, msg.ReplyToMessage.MessageId)
	mContext, found := h.Contexts.Get(key)
	if !found {
		return nil
	}

	sub, ok := h.Registry.Get(ctx.EffectiveUser.Id)
	if !ok || sub.SealedToken == "" {
		return nil
	}

	token, err := secrets.Open(sub.SealedToken, h.Config.EncryptionKey)
	if err != nil {
		_, _ = msg.Reply(b, "Auth error. Reconnect via /connect", nil)
		return nil
	}

	tctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	client := h.Factory.GetUserClient(tctx, token)
	comment := &github.IssueComment{Body: &msg.Text}
	if _, _, err := client.Issues.CreateComment(tctx, mContext.Owner, mContext.Repo, mContext.PRNumber, comment); err != nil {
		log.Printf("Failed to post comment to %s/%s#%d: %v", mContext.Owner, mContext.Repo, mContext.PRNumber, err)
		_, _ = msg.Reply(b, "Failed to post the comment.", nil)
		return nil
	}

	return nil
}
