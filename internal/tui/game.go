package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dougneves/doug-minigames/pkg/chat"
	"github.com/dougneves/doug-minigames/pkg/game"
)

// logLines is how many round log rows the game view shows at once.
const logLines = 6

func turnDoneCmd(epoch int) tea.Cmd {
	return tea.Tick(game.TurnDelay, func(time.Time) tea.Msg {
		return turnDoneMsg{epoch: epoch}
	})
}

// gameModel renders the running round. Host actions resolve directly on
// the engine; the viewer acts through chat commands handled by the App's
// poll loop.
type gameModel struct {
	engine *game.Engine
	store  *chat.Store
	width  int
	height int
}

func newGameModel(engine *game.Engine, store *chat.Store) gameModel {
	return gameModel{engine: engine, store: store, width: 80, height: 20}
}

func (m gameModel) Update(msg tea.Msg) (gameModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "t":
			if m.engine.State() == game.StateHostTurn && m.engine.ResolveAction(game.TargetOpponent) {
				return m, turnDoneCmd(m.engine.Epoch())
			}
		case "b":
			if m.engine.State() == game.StateHostTurn && m.engine.ResolveAction(game.TargetSelf) {
				return m, turnDoneCmd(m.engine.Epoch())
			}
		case "r":
			return m, func() tea.Msg { return roundResetMsg{} }
		}
	}
	return m, nil
}

// turnLine describes whose move it is, or how the round ended.
func (m gameModel) turnLine() string {
	player, _ := m.engine.Player()
	switch m.engine.State() {
	case game.StateHostTurn:
		return hostStyle.Render("your turn") + dimStyle.Render("  t throw · b break on yourself")
	case game.StateViewerTurn:
		return viewerStyle.Render(player.DisplayName+"'s turn") +
			dimStyle.Render("  waiting for a chat command")
	case game.StateResolving:
		return dimStyle.Render("...")
	case game.StateOver:
		return accentStyle.Render("round over") + dimStyle.Render("  r for a new round")
	}
	return ""
}

func (m gameModel) View() string {
	var b strings.Builder
	player, ok := m.engine.Player()
	if !ok {
		return "\n " + dimStyle.Render("no round in progress") + "\n"
	}

	b.WriteByte('\n')
	b.WriteString(" " + hostStyle.Render("you") + "        " + renderLives(m.engine.HostLives(), game.MaxLives) + "\n")

	name := truncStr(player.DisplayName, 24)
	b.WriteString(" " + viewerStyle.Render(name) + strings.Repeat(" ", max(11-len(name), 1)) + renderLives(m.engine.ViewerLives(), game.MaxLives) + "\n\n")

	b.WriteString(" " + normalStyle.Render(fmt.Sprintf("🥚 %d eggs left", m.engine.EggsLeft())) + "\n\n")
	b.WriteString(" " + m.turnLine() + "\n\n")

	// Round log, newest last.
	log := m.engine.Log()
	if len(log) > logLines {
		log = log[len(log)-logLines:]
	}
	for _, line := range log {
		b.WriteString("   " + chatTextStyle.Render(line) + "\n")
	}
	padLines(logLines-len(log), &b)

	// A slice of live chat keeps the host oriented mid-round.
	feedLines := m.height - logLines - 12
	if feedLines < 3 {
		feedLines = 3
	}
	b.WriteString("\n" + metaStyle.Render(" chat") + "\n")
	b.WriteString(renderChatFeed(m.store.Messages(), m.width, feedLines))
	return b.String()
}
