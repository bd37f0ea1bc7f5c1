package models

// PullRequestPayload mirrors the fields of a GitHub webhook delivery this bot
// routes on. Transient; decoded from the raw request body and never stored.
type PullRequestPayload struct {
	Action      string       `json:"action"`
	Repository  Repository   `json:"repository"`
	Sender      Sender       `json:"sender"`
	PullRequest *PullRequest `json:"pull_request"`
}

type Repository struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type Sender struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

type PullRequest struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
}
