package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dougneves/doug-minigames/pkg/chat"
	"github.com/dougneves/doug-minigames/pkg/domain"
)

// feedMessage builds a chat message with a deterministic id.
func feedMessage(id, channelID, name, text string) domain.ChatMessage {
	return domain.ChatMessage{
		ID:     id,
		Author: &domain.Author{ChannelID: channelID, DisplayName: name},
		Snippet: &domain.Snippet{
			DisplayText: text,
			PublishedAt: time.Date(2025, 6, 1, 20, 15, 0, 0, time.UTC),
		},
	}
}

// newTestLobby returns a lobby whose listener has consumed joins from the
// given viewer names.
func newTestLobby(names ...string) lobbyModel {
	store := chat.NewStore(0)
	listener := chat.NewListener("")
	listener.SetListening(true)

	var batch []domain.ChatMessage
	for _, name := range names {
		batch = append(batch, feedMessage(uuid.NewString(), "UC-"+name, name, "!jogar"))
	}
	listener.Process(batch)

	return newLobbyModel(store, chat.NewPoller(store), listener)
}

func TestLobbyEmptyRosterShowsWaiting(t *testing.T) {
	m := newTestLobby()
	if !strings.Contains(m.View(), "waiting for players") {
		t.Errorf("expected waiting notice, got:\n%s", m.View())
	}
}

func TestLobbyRendersRosterInJoinOrder(t *testing.T) {
	m := newTestLobby("alice", "bob")
	view := m.View()
	if !strings.Contains(view, "alice") || !strings.Contains(view, "bob") {
		t.Errorf("expected both players in view, got:\n%s", view)
	}
	if strings.Index(view, "alice") > strings.Index(view, "bob") {
		t.Error("roster not in join order")
	}
}

func TestLobbyCursorNavigationClamps(t *testing.T) {
	m := newTestLobby("alice", "bob")

	m, _ = m.Update(key("k"))
	if m.cursor != 0 {
		t.Errorf("cursor moved above the top: %d", m.cursor)
	}
	m, _ = m.Update(key("j"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d after j, want 1", m.cursor)
	}
	m, _ = m.Update(key("j"))
	if m.cursor != 1 {
		t.Errorf("cursor moved past the last player: %d", m.cursor)
	}
}

func TestLobbyEnterStartsRoundWithSelectedPlayer(t *testing.T) {
	m := newTestLobby("alice", "bob")
	m, _ = m.Update(key("j"))
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	msg, ok := cmd().(startRoundMsg)
	if !ok {
		t.Fatalf("command produced %T, want startRoundMsg", cmd())
	}
	if msg.player.DisplayName != "bob" {
		t.Errorf("selected %q, want bob", msg.player.DisplayName)
	}
}

func TestLobbyEnterWithEmptyRosterIsNoOp(t *testing.T) {
	m := newTestLobby()
	m, cmd := m.Update(key("enter"))
	if cmd != nil {
		t.Error("enter with empty roster produced a command")
	}
	if !strings.Contains(m.View(), "nobody has joined yet") {
		t.Errorf("expected empty-roster status, got:\n%s", m.View())
	}
}

func TestLobbyReconnectKeyEmitsRestart(t *testing.T) {
	m := newTestLobby()
	_, cmd := m.Update(key("s"))
	if cmd == nil {
		t.Fatal("s produced no command")
	}
	if _, ok := cmd().(restartPollMsg); !ok {
		t.Fatalf("command produced %T, want restartPollMsg", cmd())
	}
}

func TestRenderChatFeedClipsToNewest(t *testing.T) {
	msgs := []domain.ChatMessage{
		feedMessage("m1", "UC1", "alice", "first"),
		feedMessage("m2", "UC2", "bob", "second"),
		feedMessage("m3", "UC3", "carol", "third"),
	}
	out := renderChatFeed(msgs, 80, 2)
	if strings.Contains(out, "first") {
		t.Error("oldest message should be clipped out")
	}
	if !strings.Contains(out, "second") || !strings.Contains(out, "third") {
		t.Errorf("expected newest two messages, got:\n%s", out)
	}
}

func TestRenderChatLineShowsOwnerBadge(t *testing.T) {
	msg := feedMessage("m1", "UC1", "doug", "hello")
	msg.Author.IsOwner = true
	if !strings.Contains(renderChatLine(msg, 80), "★") {
		t.Error("expected owner badge in chat line")
	}
}
