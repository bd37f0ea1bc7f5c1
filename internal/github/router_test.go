package github

import (
	"testing"

	"prnotify/internal/models"
	"prnotify/internal/registry"
)

type recordingNotifier struct {
	calls []struct {
		userID  int64
		payload *models.PullRequestPayload
	}
}

func (n *recordingNotifier) PullRequestOpened(userID int64, payload *models.PullRequestPayload) {
	n.calls = append(n.calls, struct {
		userID  int64
		payload *models.PullRequestPayload
	}{userID, payload})
}

func watchingRegistry(userID int64, owner, name string) *registry.Registry {
	reg := registry.New()
	reg.Upsert(userID, func(s *registry.Subscription) {
		s.SealedToken = "sealed"
		s.AddRepo(models.WatchedRepo{Owner: owner, Name: name})
	})
	return reg
}

func prPayload(owner, name, action, title, url string) *models.PullRequestPayload {
	p := &models.PullRequestPayload{
		Action:      action,
		PullRequest: &models.PullRequest{Number: 1, Title: title, HTMLURL: url},
	}
	p.Repository.Name = name
	p.Repository.Owner.Login = owner
	p.Sender = models.Sender{Login: "octocat", AvatarURL: "https://avatars.example/1"}
	return p
}

func TestRouteOpenedPR(t *testing.T) {
	n := &recordingNotifier{}
	r := NewRouter(watchingRegistry(42, "acme", "widgets"), n)

	r.Route(prPayload("acme", "widgets", "opened", "Fix bug", "https://x/1"))

	if len(n.calls) != 1 {
		t.Fatalf("dispatcher invoked %d times, want 1", len(n.calls))
	}
	call := n.calls[0]
	if call.userID != 42 {
		t.Errorf("notified user %d, want 42", call.userID)
	}
	if call.payload.PullRequest.Title != "Fix bug" || call.payload.PullRequest.HTMLURL != "https://x/1" {
		t.Errorf("payload = %+v", call.payload.PullRequest)
	}
}

func TestRouteIgnoresOtherActions(t *testing.T) {
	for _, action := range []string{"closed", "reopened", "synchronize", "edited"} {
		n := &recordingNotifier{}
		r := NewRouter(watchingRegistry(42, "acme", "widgets"), n)

		r.Route(prPayload("acme", "widgets", action, "Fix bug", "https://x/1"))

		if len(n.calls) != 0 {
			t.Errorf("action %q triggered %d notifications, want 0", action, len(n.calls))
		}
	}
}

func TestRouteIgnoresNonPREvents(t *testing.T) {
	n := &recordingNotifier{}
	r := NewRouter(watchingRegistry(42, "acme", "widgets"), n)

	p := prPayload("acme", "widgets", "opened", "", "")
	p.PullRequest = nil // push events have no pull_request payload
	r.Route(p)

	if len(n.calls) != 0 {
		t.Errorf("event without pull_request triggered %d notifications", len(n.calls))
	}
}

func TestRouteNoMatchIsNoop(t *testing.T) {
	n := &recordingNotifier{}
	r := NewRouter(watchingRegistry(42, "acme", "widgets"), n)

	r.Route(prPayload("acme", "gears", "opened", "Fix bug", "https://x/1"))
	r.Route(prPayload("Acme", "widgets", "opened", "Fix bug", "https://x/1")) // case-sensitive

	if len(n.calls) != 0 {
		t.Errorf("unmatched events triggered %d notifications", len(n.calls))
	}
}

// Every watcher of a repository gets the notification, not just the first
// subscription found.
func TestRouteFansOutToAllWatchers(t *testing.T) {
	reg := registry.New()
	for _, id := range []int64{7, 42} {
		reg.Upsert(id, func(s *registry.Subscription) {
			s.AddRepo(models.WatchedRepo{Owner: "acme", Name: "widgets"})
		})
	}
	reg.Upsert(99, func(s *registry.Subscription) {
		s.AddRepo(models.WatchedRepo{Owner: "acme", Name: "gears"})
	})

	n := &recordingNotifier{}
	NewRouter(reg, n).Route(prPayload("acme", "widgets", "opened", "Fix bug", "https://x/1"))

	if len(n.calls) != 2 {
		t.Fatalf("dispatcher invoked %d times, want 2", len(n.calls))
	}
	if n.calls[0].userID != 7 || n.calls[1].userID != 42 {
		t.Errorf("notified users %d, %d, want 7, 42", n.calls[0].userID, n.calls[1].userID)
	}
}
