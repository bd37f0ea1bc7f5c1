package notify

import (
	"strings"
	"testing"

	"prnotify/internal/models"
)

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			input:    "Hello World",
			expected: "Hello World",
		},
		{
			input:    "Hello_World",
			expected: "Hello\\_World",
		},
		{
			input:    "[]()~`>#+-=|{}.!",
			expected: "\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!",
		},
		{
			input:    "Backslash \\ test",
			expected: "Backslash \\\\ test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := EscapeMarkdownV2(tt.input); got != tt.expected {
				t.Errorf("EscapeMarkdownV2() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEscapeMarkdownV2URL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			input:    "https://example.com",
			expected: "https://example.com",
		},
		{
			input:    "https://example.com/foo(bar)",
			expected: "https://example.com/foo\\(bar\\)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := EscapeMarkdownV2URL(tt.input); got != tt.expected {
				t.Errorf("EscapeMarkdownV2URL() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFormatRepo(t *testing.T) {
	tests := []struct {
		repo     string
		expected string
	}{
		{
			repo:     "owner/repo",
			expected: "[owner/repo](https://github.com/owner/repo)",
		},
		{
			repo:     "owner/my_repo",
			expected: "[owner/my\\_repo](https://github.com/owner/my_repo)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.repo, func(t *testing.T) {
			if got := FormatRepo(tt.repo); got != tt.expected {
				t.Errorf("FormatRepo() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFormatUser(t *testing.T) {
	tests := []struct {
		user     string
		expected string
	}{
		{
			user:     "octocat",
			expected: "[octocat](https://github.com/octocat)",
		},
		{
			user:     "user_name",
			expected: "[user\\_name](https://github.com/user_name)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			if got := FormatUser(tt.user); got != tt.expected {
				t.Errorf("FormatUser() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFormatPullRequestOpened(t *testing.T) {
	p := &models.PullRequestPayload{
		Action: "opened",
		Sender: models.Sender{Login: "octocat", AvatarURL: "https://avatars.example/1"},
		PullRequest: &models.PullRequest{
			Number:  12,
			Title:   "Fix bug (critical)",
			HTMLURL: "https://github.com/acme/widgets/pull/12",
		},
	}
	p.Repository.Name = "widgets"
	p.Repository.Owner.Login = "acme"

	msg, markup := FormatPullRequestOpened(p)

	if !strings.Contains(msg, "\\#12") {
		t.Errorf("message missing PR number: %q", msg)
	}
	if !strings.Contains(msg, "Fix bug \\(critical\\)") {
		t.Errorf("message title not escaped: %q", msg)
	}
	if !strings.Contains(msg, "[acme/widgets](https://github.com/acme/widgets)") {
		t.Errorf("message missing repo link: %q", msg)
	}
	if !strings.Contains(msg, "[octocat](https://github.com/octocat)") {
		t.Errorf("message missing sender link: %q", msg)
	}

	if markup == nil || len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 1 {
		t.Fatalf("markup = %+v, want single button", markup)
	}
	btn := markup.InlineKeyboard[0][0]
	if btn.Text != "View PR" || btn.Url != "https://github.com/acme/widgets/pull/12" {
		t.Errorf("button = %+v", btn)
	}
}
