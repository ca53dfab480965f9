package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dougneves/doug-minigames/internal/config"
	"github.com/dougneves/doug-minigames/pkg/chat"
	"github.com/dougneves/doug-minigames/pkg/domain"
	"github.com/dougneves/doug-minigames/pkg/game"
)

func newTestApp() App {
	cfg := &config.Config{
		JoinCommand:     "!jogar",
		ThrowCommand:    "!tacar",
		BreakCommand:    "!quebrar",
		MinPollInterval: 5 * time.Second,
	}
	a := NewApp(cfg, "", "test")
	m, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m.(App)
}

func updateApp(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

// connectApp drives the app into the lobby with an active poll cycle and
// returns it together with the armed first-poll message.
func connectApp(t *testing.T, a App) (App, pollTickMsg) {
	t.Helper()
	a, cmd := updateApp(t, a, chatIDMsg{id: "chat-1"})
	if cmd == nil {
		t.Fatal("entering the lobby armed no poll cycle")
	}
	tick, ok := cmd().(pollTickMsg)
	if !ok {
		t.Fatalf("command produced %T, want pollTickMsg", cmd())
	}
	return a, tick
}

func TestAppStartsOnSetup(t *testing.T) {
	a := newTestApp()
	if !strings.Contains(a.View(), "connect to your live stream") {
		t.Errorf("expected setup form, got:\n%s", a.View())
	}
}

func TestAppLookupFailureStaysOnSetup(t *testing.T) {
	a := newTestApp()
	a, _ = updateApp(t, a, chatIDMsg{err: errors.New("boom")})
	if a.view != viewSetup {
		t.Errorf("view = %v, want setup", a.view)
	}
	if !strings.Contains(a.View(), "could not connect") {
		t.Errorf("expected lookup error in view, got:\n%s", a.View())
	}
}

func TestAppLookupSuccessEntersLobby(t *testing.T) {
	a := newTestApp()
	a, _ = connectApp(t, a)

	if a.view != viewLobby {
		t.Fatalf("view = %v, want lobby", a.view)
	}
	if a.chatID != "chat-1" {
		t.Errorf("chatID = %q, want chat-1", a.chatID)
	}
	if !a.listener.Listening() {
		t.Error("listener not listening after entering the lobby")
	}
}

func TestAppPollResultFeedsRoster(t *testing.T) {
	a := newTestApp()
	a, tick := connectApp(t, a)
	a, _ = updateApp(t, a, tick)

	a, cmd := updateApp(t, a, pollResultMsg{page: &chat.Page{
		Messages: []domain.ChatMessage{
			feedMessage("m1", "UC-alice", "alice", "!jogar"),
			feedMessage("m2", "UC-bob", "bob", "hello"),
		},
		PollingInterval: 7 * time.Second,
	}})
	if cmd == nil {
		t.Fatal("successful poll did not reschedule")
	}

	players := a.listener.Players()
	if len(players) != 1 || players[0].DisplayName != "alice" {
		t.Fatalf("roster = %v, want just alice", players)
	}
	if a.store.Len() != 2 {
		t.Errorf("store has %d messages, want 2", a.store.Len())
	}
}

func TestAppStaleTickIsDropped(t *testing.T) {
	a := newTestApp()
	a, tick := connectApp(t, a)
	a.poller.Stop()

	_, cmd := updateApp(t, a, tick)
	if cmd != nil {
		t.Error("stale poll tick still triggered a fetch")
	}
}

func TestAppRoundFlowWithViewerCommand(t *testing.T) {
	a := newTestApp()
	a, tick := connectApp(t, a)
	a, _ = updateApp(t, a, tick)
	a, _ = updateApp(t, a, pollResultMsg{page: &chat.Page{
		Messages: []domain.ChatMessage{feedMessage("m1", "UC-alice", "alice", "!jogar")},
	}})

	// Host picks alice and opens with a throw.
	a, _ = updateApp(t, a, startRoundMsg{player: a.listener.Players()[0]})
	if a.view != viewGame {
		t.Fatalf("view = %v, want game", a.view)
	}
	if a.listener.Listening() {
		t.Error("roster listening still on during a round")
	}
	a, cmd := updateApp(t, a, key("t"))
	if cmd == nil {
		t.Fatal("host throw armed no pacing timer")
	}
	a, _ = updateApp(t, a, turnDoneMsg{epoch: a.engine.Epoch()})
	if a.engine.State() != game.StateViewerTurn {
		t.Fatalf("state = %v, want viewer turn", a.engine.State())
	}

	// The viewer answers through chat on the next poll cycle.
	a, _ = updateApp(t, a, pollTickMsg{epoch: a.poller.Epoch()})
	a, cmd = updateApp(t, a, pollResultMsg{page: &chat.Page{
		Messages: []domain.ChatMessage{feedMessage("m2", "UC-alice", "alice", "!tacar")},
	}})
	if cmd == nil {
		t.Fatal("viewer command produced no commands")
	}
	if a.engine.State() != game.StateResolving {
		t.Errorf("state = %v, want resolving after chat command", a.engine.State())
	}
	if a.engine.EggsLeft() != 8 {
		t.Errorf("eggs left = %d, want 8", a.engine.EggsLeft())
	}
}

func TestAppChatCommandFromStrangerIgnored(t *testing.T) {
	a := newTestApp()
	a, tick := connectApp(t, a)
	a, _ = updateApp(t, a, tick)
	a, _ = updateApp(t, a, pollResultMsg{page: &chat.Page{
		Messages: []domain.ChatMessage{feedMessage("m1", "UC-alice", "alice", "!jogar")},
	}})
	a, _ = updateApp(t, a, startRoundMsg{player: a.listener.Players()[0]})
	a, _ = updateApp(t, a, key("t"))
	a, _ = updateApp(t, a, turnDoneMsg{epoch: a.engine.Epoch()})

	a, _ = updateApp(t, a, pollTickMsg{epoch: a.poller.Epoch()})
	a, _ = updateApp(t, a, pollResultMsg{page: &chat.Page{
		Messages: []domain.ChatMessage{feedMessage("m2", "UC-mallory", "mallory", "!tacar")},
	}})
	if a.engine.State() != game.StateViewerTurn {
		t.Errorf("state = %v, stranger's command was accepted", a.engine.State())
	}
}

func TestAppRoundResetReturnsToLobby(t *testing.T) {
	a := newTestApp()
	a, _ = connectApp(t, a)
	a, _ = updateApp(t, a, startRoundMsg{player: domain.Player{ChannelID: "UC1", DisplayName: "alice"}})

	a, _ = updateApp(t, a, roundResetMsg{})
	if a.view != viewLobby {
		t.Errorf("view = %v, want lobby", a.view)
	}
	if a.engine.State() != game.StateSelecting {
		t.Errorf("engine state = %v, want selecting", a.engine.State())
	}
	if !a.listener.Listening() {
		t.Error("roster listening not resumed after reset")
	}
}

func TestAppStaleTurnTimerIsDropped(t *testing.T) {
	a := newTestApp()
	a, _ = connectApp(t, a)
	a, _ = updateApp(t, a, startRoundMsg{player: domain.Player{ChannelID: "UC1", DisplayName: "alice"}})
	a, _ = updateApp(t, a, key("t"))
	stale := a.engine.Epoch()

	a, _ = updateApp(t, a, roundResetMsg{})
	a, _ = updateApp(t, a, startRoundMsg{player: domain.Player{ChannelID: "UC1", DisplayName: "alice"}})
	a, _ = updateApp(t, a, turnDoneMsg{epoch: stale})
	if a.engine.State() != game.StateHostTurn {
		t.Errorf("state = %v, stale pacing timer advanced the new round", a.engine.State())
	}
}

func TestAppQuitKey(t *testing.T) {
	a := newTestApp()
	a, _ = connectApp(t, a)
	_, cmd := updateApp(t, a, key("q"))
	if cmd == nil {
		t.Fatal("q in lobby produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("command produced %T, want tea.QuitMsg", cmd())
	}
}
