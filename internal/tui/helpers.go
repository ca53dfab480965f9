package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/dougneves/doug-minigames/pkg/domain"
)

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// formatChatTime formats a message timestamp as a short wall-clock time (H:MM).
func formatChatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// padLines writes blank lines to fill dead space above sparse lists.
func padLines(n int, b *strings.Builder) {
	for i := 0; i < n; i++ {
		b.WriteByte('\n')
	}
}

// renderChatLine renders one chat message as a single feed line, clipped to
// the given width. Owners and moderators get a badge before their name.
func renderChatLine(msg domain.ChatMessage, width int) string {
	name := "someone"
	badge := ""
	published := time.Time{}
	if msg.Author != nil {
		if msg.Author.DisplayName != "" {
			name = msg.Author.DisplayName
		}
		switch {
		case msg.Author.IsOwner:
			badge = chatBadgeStyle.Render("★") + " "
		case msg.Author.IsModerator:
			badge = chatBadgeStyle.Render("🔧") + " "
		}
	}
	if msg.Snippet != nil {
		published = msg.Snippet.PublishedAt
	}

	timePart := metaStyle.Render(fmt.Sprintf("%5s", formatChatTime(published)))
	namePart := chatNameStyle.Render(name)
	sep := chatSepStyle.Render(" · ")

	prefixWidth := 1 + 5 + 2 + lipgloss.Width(badge) + lipgloss.Width(namePart) + 3
	bodyWidth := width - prefixWidth
	if bodyWidth < 10 {
		bodyWidth = 10
	}
	return " " + timePart + "  " + badge + namePart + sep + chatTextStyle.Render(truncStr(msg.Text(), bodyWidth))
}

// renderChatFeed renders the newest messages that fit in the given number
// of lines, oldest first, padded at the top when the feed is short.
func renderChatFeed(messages []domain.ChatMessage, width, lines int) string {
	if lines < 1 {
		return ""
	}

	var b strings.Builder
	if len(messages) > lines {
		messages = messages[len(messages)-lines:]
	}
	padLines(lines-len(messages), &b)
	for _, msg := range messages {
		b.WriteString(renderChatLine(msg, width))
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}
