// Package tui renders the host's terminal app: a setup form for the
// stream credentials, a lobby where viewers join through chat, and the
// egg round itself. The root App owns the chat pipeline and the game
// engine; the per-view sub-models only read from them and emit messages.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dougneves/doug-minigames/internal/config"
	"github.com/dougneves/doug-minigames/pkg/chat"
	"github.com/dougneves/doug-minigames/pkg/domain"
	"github.com/dougneves/doug-minigames/pkg/game"
	"github.com/dougneves/doug-minigames/pkg/youtube"
)

type view int

const (
	viewSetup view = iota
	viewLobby
	viewGame
)

// setupSubmitMsg carries the credentials entered in the setup form.
type setupSubmitMsg struct {
	apiKey  string
	videoID string
}

// chatIDMsg carries the result of the live-chat id lookup.
type chatIDMsg struct {
	id  string
	err error
}

// pollTickMsg fires when a scheduled poll cycle comes due. It carries the
// poller epoch current when the timer was armed; a stale epoch is dropped.
type pollTickMsg struct {
	epoch int
}

// pollResultMsg carries a finished fetch back to the poller.
type pollResultMsg struct {
	page *chat.Page
	err  error
}

// startRoundMsg starts a round against the selected lobby player.
type startRoundMsg struct {
	player domain.Player
}

// roundResetMsg abandons the round and returns to the lobby.
type roundResetMsg struct{}

// restartPollMsg re-arms polling after a disabled or failed session.
type restartPollMsg struct{}

// turnDoneMsg fires when the pacing pause after an egg resolution ends.
// It carries the engine epoch current when the timer was armed.
type turnDoneMsg struct {
	epoch int
}

// App is the root Bubbletea model.
type App struct {
	cfg     *config.Config
	cfgPath string
	yt      *youtube.Client
	version string

	store    *chat.Store
	poller   *chat.Poller
	listener *chat.Listener
	engine   *game.Engine

	view  view
	setup setupModel
	lobby lobbyModel
	game  gameModel

	chatID string
	width  int
	height int
}

// NewApp creates the TUI application from a loaded config. The config
// path is kept so credentials entered in setup can be saved back.
func NewApp(cfg *config.Config, cfgPath, version string) App {
	store := chat.NewStore(chat.DefaultStoreLimit)
	poller := chat.NewPoller(store)
	poller.SetMinInterval(cfg.MinPollInterval)
	listener := chat.NewListener(cfg.JoinCommand)
	engine := game.NewEngine(nil)
	engine.SetCommands(cfg.ThrowCommand, cfg.BreakCommand)

	a := App{
		cfg:      cfg,
		cfgPath:  cfgPath,
		version:  version,
		store:    store,
		poller:   poller,
		listener: listener,
		engine:   engine,
	}
	a.setup = newSetupModel(cfg.APIKey, cfg.VideoID)
	a.lobby = newLobbyModel(store, poller, listener)
	a.game = newGameModel(engine, store)
	return a
}

func (a App) Init() tea.Cmd {
	return nil
}

// lookupChatID resolves the video's active live-chat id.
func (a App) lookupChatID(videoID string) tea.Cmd {
	yt := a.yt
	return func() tea.Msg {
		id, err := yt.LiveChatID(context.Background(), videoID)
		return chatIDMsg{id: id, err: err}
	}
}

// fetchCmd runs one poll cycle fetch off the update loop.
func (a App) fetchCmd(pageToken string) tea.Cmd {
	yt, chatID := a.yt, a.chatID
	return func() tea.Msg {
		page, err := yt.Messages(context.Background(), chatID, pageToken)
		if err != nil {
			return pollResultMsg{err: err}
		}
		return pollResultMsg{page: &chat.Page{
			Messages:        page.Messages,
			NextPageToken:   page.NextPageToken,
			PollingInterval: page.PollingInterval,
		}}
	}
}

func pollTickCmd(delay time.Duration, epoch int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return pollTickMsg{epoch: epoch}
	})
}

// startPolling arms a fresh polling session. The collapsed case (a Start
// within the debounce window) returns no command at all.
func (a *App) startPolling() tea.Cmd {
	epoch, ok := a.poller.Start()
	if !ok {
		return nil
	}
	return func() tea.Msg { return pollTickMsg{epoch: epoch} }
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(1) + status(1) + help(1)
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3}
		a.setup, _ = a.setup.Update(bodyMsg)
		a.lobby, _ = a.lobby.Update(bodyMsg)
		a.game, _ = a.game.Update(bodyMsg)
		return a, nil

	case setupSubmitMsg:
		a.cfg.APIKey = msg.apiKey
		a.cfg.VideoID = msg.videoID
		a.yt = youtube.New(msg.apiKey)
		return a, a.lookupChatID(msg.videoID)

	case chatIDMsg:
		if msg.err != nil {
			a.setup, _ = a.setup.Update(msg)
			return a, nil
		}
		a.chatID = msg.id
		if a.cfgPath != "" {
			config.Save(a.cfgPath, a.cfg) //nolint:errcheck // best-effort persist
		}
		a.lobby.videoID = a.cfg.VideoID
		a.view = viewLobby
		a.listener.Reset()
		a.listener.SetListening(true)
		return a, a.startPolling()

	case pollTickMsg:
		token, ok := a.poller.BeginCycle(msg.epoch)
		if !ok {
			return a, nil
		}
		return a, a.fetchCmd(token)

	case pollResultMsg:
		next := a.poller.FinishCycle(msg.page, msg.err)
		batch := a.store.LastFetched()
		a.listener.Process(batch)

		var cmds []tea.Cmd
		if target, ok := a.engine.CommandFromChat(batch); ok {
			if a.engine.ResolveAction(target) {
				cmds = append(cmds, turnDoneCmd(a.engine.Epoch()))
			}
		}
		if next.Reschedule {
			cmds = append(cmds, pollTickCmd(next.Delay, a.poller.Epoch()))
		}
		return a, tea.Batch(cmds...)

	case turnDoneMsg:
		a.engine.FinishTurn(msg.epoch)
		return a, nil

	case startRoundMsg:
		a.engine.SetHostName("you")
		a.engine.Start(msg.player)
		a.listener.SetListening(false)
		a.view = viewGame
		return a, nil

	case roundResetMsg:
		a.engine.Reset()
		a.store.Reset()
		a.listener.SetListening(true)
		a.view = viewLobby
		return a, nil

	case restartPollMsg:
		return a, a.startPolling()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.view != viewSetup && msg.String() == "q" {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewSetup:
		a.setup, cmd = a.setup.Update(msg)
	case viewLobby:
		a.lobby, cmd = a.lobby.Update(msg)
	case viewGame:
		a.game, cmd = a.game.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	// Header: centered logo
	logo := renderLogo()
	logoPad := (a.width - lipgloss.Width(logo)) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	// Status line: poller badge + message count + roster size
	status := " " + pollerBadge(a.poller.State().String())
	if a.store.Len() > 0 {
		status += metaStyle.Render(fmt.Sprintf("  %d messages", a.store.Len()))
	}
	if n := len(a.listener.Players()); n > 0 {
		status += metaStyle.Render(fmt.Sprintf("  %d joined", n))
	}
	if err := a.poller.Err(); err != nil {
		status += "  " + errorStyle.Render(truncStr(err.Error(), 60))
	}

	var body, help string
	switch a.view {
	case viewSetup:
		body = a.setup.View()
		help = " " + helpEntry("tab", "next field") + "  " + helpEntry("enter", "connect") + "  " + helpEntry("ctrl+c", "quit") + "  " + metaStyle.Render("eggparty "+a.version)
	case viewLobby:
		body = a.lobby.View()
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "play") + "  " + helpEntry("c", "copy channel") + "  " + helpEntry("o", "open stream") + "  " + helpEntry("s", "reconnect") + "  " + helpEntry("q", "quit")
	case viewGame:
		body = a.game.View()
		if a.engine.State() == game.StateHostTurn {
			help = " " + helpEntry("t", "throw") + "  " + helpEntry("b", "break on self") + "  " + helpEntry("r", "end round") + "  " + helpEntry("q", "quit")
		} else {
			help = " " + helpEntry("r", "end round") + "  " + helpEntry("q", "quit")
		}
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-3), "\n")
	return fmt.Sprintf("%s\n%s\n%s\n%s", header, status, body, help)
}
