package models

// WatchedRepo is a repository a user receives notifications for. HookID is
// recorded after webhook provisioning so the hook can be removed later; it is
// zero when provisioning failed and the hook must be fixed by hand.
type WatchedRepo struct {
	Owner  string `json:"owner"`
	Name   string `json:"name"`
	HookID int64  `json:"hook_id,omitempty"`
}

// MessageContext stores the GitHub context associated with a sent Telegram
// message so replies can be threaded back to the pull request.
type MessageContext struct {
	Owner    string
	Repo     string
	PRNumber int
}
