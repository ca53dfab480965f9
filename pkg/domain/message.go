package domain

import (
	"strings"
	"time"
)

// Author identifies the sender of a live chat message. ChannelID is the
// stable identity key; display name and avatar can change between streams.
type Author struct {
	ChannelID   string `json:"channelId"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"profileImageUrl"`
	IsOwner     bool   `json:"isChatOwner,omitempty"`
	IsModerator bool   `json:"isChatModerator,omitempty"`
	IsSponsor   bool   `json:"isChatSponsor,omitempty"`
	IsVerified  bool   `json:"isVerified,omitempty"`
}

// Snippet is the text payload of a chat message.
type Snippet struct {
	DisplayText string    `json:"displayMessage"`
	PublishedAt time.Time `json:"publishedAt"`
}

// ChatMessage is a single entry in a live chat feed. Author and Snippet
// may be absent on malformed or system entries; such messages are stored
// but inert for gameplay. JSON tags follow the YouTube wire names so API
// items decode straight into this type.
type ChatMessage struct {
	ID      string   `json:"id"`
	Author  *Author  `json:"authorDetails,omitempty"`
	Snippet *Snippet `json:"snippet,omitempty"`
}

// Text returns the trimmed display text, or "" when the snippet is absent.
func (m ChatMessage) Text() string {
	if m.Snippet == nil {
		return ""
	}
	return strings.TrimSpace(m.Snippet.DisplayText)
}

// Inert reports whether the message lacks the author or text needed to
// take part in gameplay.
func (m ChatMessage) Inert() bool {
	return m.Author == nil || m.Text() == ""
}
