package notify

import (
	"fmt"
	"strings"

	"prnotify/internal/models"

	"github.com/PaulSonOfLars/gotgbot/v2"
)

var markdownV2Replacer = strings.NewReplacer(
	"\\", "\\\\",
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

var markdownV2URLReplacer = strings.NewReplacer(
	"\\", "\\\\",
	"(", "\\(",
	")", "\\)",
)

// EscapeMarkdownV2 escapes text for Telegram's MarkdownV2 parse mode.
func EscapeMarkdownV2(s string) string {
	return markdownV2Replacer.Replace(s)
}

// EscapeMarkdownV2URL escapes a URL for use inside a MarkdownV2 link target.
func EscapeMarkdownV2URL(s string) string {
	return markdownV2URLReplacer.Replace(s)
}

// FormatUser renders a GitHub login as a profile link.
func FormatUser(login string) string {
	return fmt.Sprintf("[%s](https://github.com/%s)", EscapeMarkdownV2(login), login)
}

// FormatRepo renders an owner/name pair as a repository link.
func FormatRepo(fullName string) string {
	return fmt.Sprintf("[%s](https://github.com/%s)", EscapeMarkdownV2(fullName), fullName)
}

// FormatMessageWithButton pairs a message with a single URL button.
func FormatMessageWithButton(msg, label, url string) (string, *gotgbot.InlineKeyboardMarkup) {
	return msg, &gotgbot.InlineKeyboardMarkup{
		InlineKeyboard: [][]gotgbot.InlineKeyboardButton{
			{{Text: label, Url: url}},
		},
	}
}

// FormatPullRequestOpened renders the direct-message notification for a
// freshly opened pull request.
func FormatPullRequestOpened(p *models.PullRequestPayload) (string, *gotgbot.InlineKeyboardMarkup) {
	pr := p.PullRequest
	fullName := p.Repository.Owner.Login + "/" + p.Repository.Name

	msg := fmt.Sprintf(
		"*🚀 New pull request \\#%d: %s*\n\n"+
			"*Repository:* %s\n"+
			"*By:* %s\n",
		pr.Number,
		EscapeMarkdownV2(pr.Title),
		FormatRepo(fullName),
		FormatUser(p.Sender.Login),
	)

	return FormatMessageWithButton(msg, "View PR", pr.HTMLURL)
}
