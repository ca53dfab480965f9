package tui

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/dougneves/doug-minigames/pkg/chat"
	"github.com/dougneves/doug-minigames/pkg/domain"
	"github.com/dougneves/doug-minigames/pkg/game"
)

func newTestGame(started bool) gameModel {
	engine := game.NewEngine(rand.New(rand.NewPCG(11, 23)))
	engine.SetHostName("you")
	if started {
		engine.Start(domain.Player{ChannelID: "UC-alice", DisplayName: "alice"})
	}
	return newGameModel(engine, chat.NewStore(0))
}

func TestGameViewWithoutRound(t *testing.T) {
	m := newTestGame(false)
	if !strings.Contains(m.View(), "no round in progress") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}
}

func TestGameViewRendersRound(t *testing.T) {
	m := newTestGame(true)
	view := m.View()
	if !strings.Contains(view, "alice") {
		t.Errorf("expected opponent name in view, got:\n%s", view)
	}
	if !strings.Contains(view, "10 eggs left") {
		t.Errorf("expected basket count in view, got:\n%s", view)
	}
	if !strings.Contains(view, "your turn") {
		t.Errorf("expected host turn prompt, got:\n%s", view)
	}
}

func TestGameThrowKeyResolvesHostTurn(t *testing.T) {
	m := newTestGame(true)
	m, cmd := m.Update(key("t"))
	if cmd == nil {
		t.Fatal("t on host turn produced no pacing command")
	}
	if m.engine.State() != game.StateResolving {
		t.Errorf("state = %v after throw, want resolving", m.engine.State())
	}
	if m.engine.EggsLeft() != 9 {
		t.Errorf("eggs left = %d, want 9", m.engine.EggsLeft())
	}
}

func TestGameBreakKeyResolvesOnSelf(t *testing.T) {
	m := newTestGame(true)
	m, cmd := m.Update(key("b"))
	if cmd == nil {
		t.Fatal("b on host turn produced no pacing command")
	}
	if m.engine.State() != game.StateResolving {
		t.Errorf("state = %v after break, want resolving", m.engine.State())
	}
}

func TestGameActionKeysIgnoredOutsideHostTurn(t *testing.T) {
	m := newTestGame(true)
	m, _ = m.Update(key("t")) // resolving now

	m, cmd := m.Update(key("t"))
	if cmd != nil {
		t.Error("t during resolving produced a command")
	}
	if m.engine.EggsLeft() != 9 {
		t.Errorf("eggs left = %d, a second throw slipped through", m.engine.EggsLeft())
	}
}

func TestGameResetKeyEmitsRoundReset(t *testing.T) {
	m := newTestGame(true)
	_, cmd := m.Update(key("r"))
	if cmd == nil {
		t.Fatal("r produced no command")
	}
	if _, ok := cmd().(roundResetMsg); !ok {
		t.Fatalf("command produced %T, want roundResetMsg", cmd())
	}
}

func TestGameViewShowsRoundLog(t *testing.T) {
	m := newTestGame(true)
	m, _ = m.Update(key("t"))
	view := m.View()
	if !strings.Contains(view, "throws an egg") {
		t.Errorf("expected throw line in round log, got:\n%s", view)
	}
}
