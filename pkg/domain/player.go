package domain

// Player is a viewer who issued the join command. Exactly one Player
// exists per distinct author ChannelID.
type Player struct {
	ChannelID   string `json:"channelId"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// PlayerFromAuthor derives the roster entry for a chat author.
func PlayerFromAuthor(a Author) Player {
	return Player{
		ChannelID:   a.ChannelID,
		DisplayName: a.DisplayName,
		AvatarURL:   a.AvatarURL,
	}
}

// ChannelURL returns the public YouTube URL of the player's channel.
func (p Player) ChannelURL() string {
	return "https://www.youtube.com/channel/" + p.ChannelID
}
