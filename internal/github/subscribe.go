package github

import (
	"context"
	"fmt"
	"log"

	"prnotify/internal/config"
	"prnotify/internal/models"
	"prnotify/internal/registry"
	"prnotify/internal/secrets"

	"github.com/google/go-github/v80/github"
)

// Subscriber registers watched repositories for linked users and provisions
// the webhook on GitHub that makes notifications flow.
type Subscriber struct {
	Config   *config.Config
	Registry *registry.Registry
	Factory  *ClientFactory
}

func NewSubscriber(cfg *config.Config, reg *registry.Registry, factory *ClientFactory) *Subscriber {
	return &Subscriber{
		Config:   cfg,
		Registry: reg,
		Factory:  factory,
	}
}

// Watch validates owner/name with the user's credential, adds it to the
// watch-set and creates the repository webhook.
//
// The watch-set is mutated before hook creation and deliberately NOT rolled
// back when provisioning fails: the user is watching the repo locally but
// notifications will not arrive until the hook is fixed. Changing this order
// would change user-visible semantics.
func (s *Subscriber) Watch(ctx context.Context, userID int64, owner, name string) error {
	client, err := s.userClient(ctx, userID)
	if err != nil {
		return err
	}

	if _, _, err := client.Repositories.Get(ctx, owner, name); err != nil {
		return fmt.Errorf("%w: %s/%s", ErrRepoNotFound, owner, name)
	}

	s.Registry.Upsert(userID, func(sub *registry.Subscription) {
		sub.AddRepo(models.WatchedRepo{Owner: owner, Name: name})
	})

	hook := &github.Hook{
		Name:   github.String("web"),
		Events: HookEvents,
		Active: github.Bool(true),
		Config: &github.HookConfig{
			URL:         github.String(s.Config.WebhookURL()),
			ContentType: github.String("json"),
			Secret:      github.String(s.Config.GitHubWebhookSecret),
		},
	}

	created, _, err := client.Repositories.CreateHook(ctx, owner, name, hook)
	if err != nil {
		log.Printf("Webhook creation failed for %s/%s: %v", owner, name, err)
		return fmt.Errorf("%w: %s/%s", ErrWebhookProvision, owner, name)
	}

	s.Registry.Upsert(userID, func(sub *registry.Subscription) {
		sub.AddRepo(models.WatchedRepo{Owner: owner, Name: name, HookID: created.GetID()})
	})

	return nil
}

// Unwatch removes owner/name from the watch-set. Hook deletion is
// best-effort: a repo the user lost access to must still be removable.
func (s *Subscriber) Unwatch(ctx context.Context, userID int64, owner, name string) error {
	sub, ok := s.Registry.Get(userID)
	if !ok || !sub.Watches(owner, name) {
		return fmt.Errorf("%w: %s/%s", ErrRepoNotFound, owner, name)
	}

	var removed models.WatchedRepo
	s.Registry.Upsert(userID, func(sub *registry.Subscription) {
		removed, _ = sub.RemoveRepo(owner, name)
	})

	if removed.HookID != 0 {
		if client, err := s.userClient(ctx, userID); err == nil {
			if _, err := client.Repositories.DeleteHook(ctx, owner, name, removed.HookID); err != nil {
				log.Printf("Failed to delete hook %d on %s/%s: %v", removed.HookID, owner, name, err)
			}
		}
	}

	return nil
}

func (s *Subscriber) userClient(ctx context.Context, userID int64) (*github.Client, error) {
	sub, ok := s.Registry.Get(userID)
	if !ok || sub.SealedToken == "" {
		return nil, ErrNotLinked
	}

	token, err := secrets.Open(sub.SealedToken, s.Config.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: credential unreadable", ErrNotLinked)
	}

	return s.Factory.GetUserClient(ctx, token), nil
}
