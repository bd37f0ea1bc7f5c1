package github

import "errors"

// Provider failures are converted to these kinds at the component boundary
// and never escape as raw API errors.
var (
	// ErrInvalidState covers expired, already-consumed, and forged state
	// tokens alike; the user restarts linking in every case.
	ErrInvalidState = errors.New("invalid or expired state token")

	// ErrProviderAuth means the code-for-token exchange (or the follow-up
	// identity lookup) failed. Detail is logged server-side only.
	ErrProviderAuth = errors.New("github authentication failed")

	// ErrNotLinked is returned when an operation requires a credential but
	// the user never completed the handshake.
	ErrNotLinked = errors.New("github account not linked")

	// ErrRepoNotFound covers both missing repositories and ones the stored
	// credential cannot read. No state is mutated.
	ErrRepoNotFound = errors.New("repository not found or access denied")

	// ErrWebhookProvision means hook creation failed after the repository
	// was already added to the watch-set; the entry is kept.
	ErrWebhookProvision = errors.New("webhook creation failed")
)
