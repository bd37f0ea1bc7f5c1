package github

import (
	"context"
	"fmt"
	"time"

	"prnotify/internal/cache"
	"prnotify/internal/registry"
	"prnotify/internal/secrets"
)

// PendingTTL bounds how long an unredeemed authorization attempt is kept.
// Expired entries are also swept in the background from cmd/bot.
const PendingTTL = 10 * time.Minute

// Handshake binds Telegram users to GitHub accounts through the OAuth
// redirect flow. Pending attempts live in a TTL cache keyed by state token;
// redemption consumes the token atomically so it can be used at most once.
type Handshake struct {
	OAuth    *OAuth
	Pending  *cache.Cache[string, int64]
	Registry *registry.Registry
	Factory  *ClientFactory
	Key      string
}

func NewHandshake(oauth *OAuth, pending *cache.Cache[string, int64], reg *registry.Registry, factory *ClientFactory, key string) *Handshake {
	return &Handshake{
		OAuth:    oauth,
		Pending:  pending,
		Registry: reg,
		Factory:  factory,
		Key:      key,
	}
}

// Begin records a pending authorization for the user and returns the URL the
// user must open to authorize the app.
func (h *Handshake) Begin(userID int64) (string, error) {
	state, err := GenerateState()
	if err != nil {
		return "", err
	}

	h.Pending.Set(state, userID, PendingTTL)
	return h.OAuth.GetLoginURL(state), nil
}

// Redeem consumes the state token, exchanges the authorization code for an
// access token and stores it (sealed) in the user's subscription, creating
// the subscription with an empty watch-set if this is a first link. Returns
// the bound Telegram user and their GitHub login. The access token itself is
// never returned to the HTTP caller.
func (h *Handshake) Redeem(ctx context.Context, code, state string) (int64, string, error) {
	userID, ok := h.Pending.Pop(state)
	if !ok {
		return 0, "", ErrInvalidState
	}

	token, err := h.OAuth.ExchangeCode(ctx, code)
	if err != nil {
		return 0, "", fmt.Errorf("%w: token exchange: %v", ErrProviderAuth, err)
	}

	client := h.Factory.GetUserClient(ctx, token.AccessToken)
	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return 0, "", fmt.Errorf("%w: fetch user: %v", ErrProviderAuth, err)
	}

	sealed, err := secrets.Seal(token.AccessToken, h.Key)
	if err != nil {
		return 0, "", fmt.Errorf("seal token: %w", err)
	}

	h.Registry.Upsert(userID, func(s *registry.Subscription) {
		s.SealedToken = sealed
	})

	return userID, user.GetLogin(), nil
}
