// Package registry holds the in-memory mapping from Telegram users to their
// GitHub credential and watched repositories. State is intentionally not
// persisted: re-linking after a restart is cheap, and nothing else in the
// process is allowed durable storage.
package registry

import (
	"sort"
	"sync"

	"prnotify/internal/models"
)

// Subscription is one user's entry: a sealed OAuth token and the watch-set.
// A subscription exists only after a completed OAuth handshake; the watch-set
// may be empty.
type Subscription struct {
	SealedToken string
	Repos       []models.WatchedRepo
}

// Watches reports whether the watch-set contains owner/name (exact match).
func (s *Subscription) Watches(owner, name string) bool {
	for _, r := range s.Repos {
		if r.Owner == owner && r.Name == name {
			return true
		}
	}
	return false
}

// AddRepo inserts repo into the watch-set, keyed by owner/name. Adding a repo
// that is already present updates its HookID instead of duplicating it.
func (s *Subscription) AddRepo(repo models.WatchedRepo) {
	for i, r := range s.Repos {
		if r.Owner == repo.Owner && r.Name == repo.Name {
			if repo.HookID != 0 {
				s.Repos[i].HookID = repo.HookID
			}
			return
		}
	}
	s.Repos = append(s.Repos, repo)
}

// RemoveRepo deletes owner/name from the watch-set and returns the removed
// entry so callers can clean up its webhook.
func (s *Subscription) RemoveRepo(owner, name string) (models.WatchedRepo, bool) {
	for i, r := range s.Repos {
		if r.Owner == owner && r.Name == name {
			s.Repos = append(s.Repos[:i], s.Repos[i+1:]...)
			return r, true
		}
	}
	return models.WatchedRepo{}, false
}

type Registry struct {
	mu   sync.RWMutex
	subs map[int64]*Subscription
}

func New() *Registry {
	return &Registry{subs: make(map[int64]*Subscription)}
}

// Get returns a copy of the user's subscription. Mutating the copy does not
// affect the registry; use Upsert for that.
func (r *Registry) Get(userID int64) (*Subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.subs[userID]
	if !ok {
		return nil, false
	}

	cp := &Subscription{SealedToken: s.SealedToken}
	cp.Repos = append(cp.Repos, s.Repos...)
	return cp, true
}

// Upsert applies mutate to the user's subscription, creating an empty one
// first if absent. The mutator runs under the registry lock, so concurrent
// read-modify-write calls for the same user cannot lose updates.
func (r *Registry) Upsert(userID int64, mutate func(*Subscription)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.subs[userID]
	if !ok {
		s = &Subscription{}
		r.subs[userID] = s
	}
	mutate(s)
}

// ClearToken drops the user's credential but keeps the watch-set. Returns
// false if the user was never linked.
func (r *Registry) ClearToken(userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.subs[userID]
	if ok {
		s.SealedToken = ""
	}
	return ok
}

// UsersWatching returns the IDs of every user whose watch-set contains
// owner/name, in stable order.
func (r *Registry) UsersWatching(owner, name string) []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []int64
	for id, s := range r.subs {
		if s.Watches(owner, name) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
