package github

import (
	"context"
	"net/url"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

type ClientFactory struct {
	// BaseURL overrides the GitHub API endpoint; tests point it at a local
	// server. Must end with a trailing slash.
	BaseURL *url.URL
}

func NewClientFactory() *ClientFactory {
	return &ClientFactory{}
}

// GetUserClient returns a GitHub client authenticated as a specific user (via OAuth token)
func (f *ClientFactory) GetUserClient(ctx context.Context, accessToken string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)
	if f.BaseURL != nil {
		client.BaseURL = f.BaseURL
	}
	return client
}
