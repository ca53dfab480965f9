package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dougneves/doug-minigames/pkg/youtube"
)

// setupModel is the credential form shown before a stream is connected.
// It collects the YouTube API key and the live video id, then asks the
// App to resolve the video's active chat id.
type setupModel struct {
	apiKey  string
	videoID string
	focus   int // 0 = api key, 1 = video id
	busy    bool
	status  string
	width   int
	height  int
}

func newSetupModel(apiKey, videoID string) setupModel {
	return setupModel{apiKey: apiKey, videoID: videoID}
}

func (m setupModel) Update(msg tea.Msg) (setupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case chatIDMsg:
		// Only the failure case reaches this view; success switches away.
		m.busy = false
		switch {
		case errors.Is(msg.err, youtube.ErrNotFound):
			m.status = "no active live chat found for that video"
		case msg.err != nil:
			m.status = "could not connect: " + msg.err.Error()
		}

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % 2
		case "shift+tab", "up":
			m.focus = (m.focus - 1 + 2) % 2
		case "enter":
			apiKey := strings.TrimSpace(m.apiKey)
			videoID := strings.TrimSpace(m.videoID)
			if apiKey == "" || videoID == "" {
				m.status = "api key and video id are both required"
				return m, nil
			}
			m.busy = true
			m.status = ""
			return m, func() tea.Msg {
				return setupSubmitMsg{apiKey: apiKey, videoID: videoID}
			}
		default:
			if m.focus == 0 {
				m.apiKey = editRune(m.apiKey, msg.String())
			} else {
				m.videoID = editRune(m.videoID, msg.String())
			}
			m.status = ""
		}
	}
	return m, nil
}

// maskKey hides all but the last four characters of the API key.
func maskKey(key string) string {
	runes := []rune(key)
	if len(runes) <= 4 {
		return key
	}
	return strings.Repeat("•", len(runes)-4) + string(runes[len(runes)-4:])
}

func (m setupModel) renderField(label, value, placeholder string, masked, focused bool) string {
	prompt := "  "
	if focused {
		prompt = inputPromptStyle.Render("> ")
	}
	shown := value
	if masked {
		shown = maskKey(value)
	}
	var body string
	switch {
	case shown == "":
		body = inputPlaceholderStyle.Render(placeholder)
	case focused:
		body = selectedStyle.Render(shown) + accentStyle.Render("█")
	default:
		body = normalStyle.Render(shown)
	}
	return " " + prompt + dimStyle.Render(label) + "  " + body
}

func (m setupModel) View() string {
	var b strings.Builder
	b.WriteByte('\n')
	b.WriteString(" " + normalStyle.Render("connect to your live stream") + "\n\n")
	b.WriteString(m.renderField("api key ", m.apiKey, "YouTube Data API key", true, m.focus == 0) + "\n")
	b.WriteString(m.renderField("video id", m.videoID, "live video id", false, m.focus == 1) + "\n\n")

	switch {
	case m.busy:
		b.WriteString(" " + dimStyle.Render("looking up the live chat...") + "\n")
	case m.status != "":
		b.WriteString(" " + errorStyle.Render(m.status) + "\n")
	}
	return b.String()
}
