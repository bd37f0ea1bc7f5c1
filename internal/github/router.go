package github

import (
	"prnotify/internal/models"
	"prnotify/internal/registry"
)

// Notifier delivers a pull-request notification to a Telegram user. Delivery
// failures stay inside the implementation; Route never learns about them.
type Notifier interface {
	PullRequestOpened(userID int64, payload *models.PullRequestPayload)
}

// Router resolves which users a verified inbound event belongs to.
type Router struct {
	Registry *registry.Registry
	Notifier Notifier
}

func NewRouter(reg *registry.Registry, notifier Notifier) *Router {
	return &Router{Registry: reg, Notifier: notifier}
}

// Route notifies every subscriber watching the event's repository. Only
// freshly opened pull requests are delivered; all other actions and event
// shapes are a silent no-op.
func (r *Router) Route(payload *models.PullRequestPayload) {
	if payload.Action != "opened" || payload.PullRequest == nil {
		return
	}

	owner := payload.Repository.Owner.Login
	name := payload.Repository.Name
	for _, userID := range r.Registry.UsersWatching(owner, name) {
		r.Notifier.PullRequestOpened(userID, payload)
	}
}
