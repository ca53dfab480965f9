package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dougneves/doug-minigames/internal/browser"
	"github.com/dougneves/doug-minigames/pkg/chat"
)

// rosterLines is how many roster rows the lobby shows at once.
const rosterLines = 8

// lobbyModel shows the live chat feed and the roster of viewers who sent
// the join command, and lets the host pick an opponent.
type lobbyModel struct {
	store    *chat.Store
	poller   *chat.Poller
	listener *chat.Listener

	videoID string
	cursor  int
	status  string
	width   int
	height  int
}

func newLobbyModel(store *chat.Store, poller *chat.Poller, listener *chat.Listener) lobbyModel {
	return lobbyModel{store: store, poller: poller, listener: listener, width: 80, height: 20}
}

func (m lobbyModel) Update(msg tea.Msg) (lobbyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		players := m.listener.Players()
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(players)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if len(players) == 0 {
				m.status = "nobody has joined yet"
				return m, nil
			}
			if m.cursor >= len(players) {
				m.cursor = len(players) - 1
			}
			p := players[m.cursor]
			m.status = ""
			return m, func() tea.Msg { return startRoundMsg{player: p} }
		case "c":
			if len(players) == 0 {
				return m, nil
			}
			if m.cursor >= len(players) {
				m.cursor = len(players) - 1
			}
			if err := clipboard.WriteAll(players[m.cursor].ChannelURL()); err != nil {
				m.status = "clipboard unavailable"
			} else {
				m.status = "channel url copied"
			}
		case "o":
			if m.videoID != "" {
				browser.Open("https://www.youtube.com/watch?v=" + m.videoID) //nolint:errcheck // best-effort browser open
			}
		case "s":
			m.status = ""
			return m, func() tea.Msg { return restartPollMsg{} }
		}
	}
	return m, nil
}

func (m lobbyModel) View() string {
	var b strings.Builder
	players := m.listener.Players()

	b.WriteString(" " + selectedStyle.Render("lobby") + "  " +
		dimStyle.Render(fmt.Sprintf("viewers join with %s", m.listener.Command())) + "\n\n")

	// Roster
	if len(players) == 0 {
		b.WriteString("   " + dimStyle.Render("waiting for players...") + "\n")
		padLines(rosterLines-1, &b)
	} else {
		cursor := m.cursor
		if cursor >= len(players) {
			cursor = len(players) - 1
		}
		shown := players
		offset := 0
		if len(shown) > rosterLines {
			// Keep the cursor visible within the window.
			offset = cursor - rosterLines + 1
			if offset < 0 {
				offset = 0
			}
			shown = shown[offset : offset+rosterLines]
		}
		for i, p := range shown {
			line := fmt.Sprintf("%2d. %s", offset+i+1, p.DisplayName)
			if offset+i == cursor {
				b.WriteString("   " + accentStyle.Render("▸ ") + selectedStyle.Render(line) + "\n")
			} else {
				b.WriteString("     " + normalStyle.Render(line) + "\n")
			}
		}
		padLines(rosterLines-len(shown), &b)
	}

	if m.status != "" {
		b.WriteString("\n " + dimStyle.Render(m.status) + "\n")
	} else {
		b.WriteString("\n\n")
	}

	// Chat feed fills the rest of the body.
	feedLines := m.height - rosterLines - 5
	if feedLines < 3 {
		feedLines = 3
	}
	b.WriteString(metaStyle.Render(" chat") + "\n")
	b.WriteString(renderChatFeed(m.store.Messages(), m.width, feedLines))
	return b.String()
}
