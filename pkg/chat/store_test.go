package chat

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/dougneves/doug-minigames/pkg/domain"
)

func makeMessage(id, channelID, text string) domain.ChatMessage {
	return domain.ChatMessage{
		ID:      id,
		Author:  &domain.Author{ChannelID: channelID, DisplayName: "user-" + channelID},
		Snippet: &domain.Snippet{DisplayText: text},
	}
}

func TestStoreAddDeduplicatesByID(t *testing.T) {
	s := NewStore(100)
	s.Add([]domain.ChatMessage{
		makeMessage("a", "UC1", "one"),
		makeMessage("b", "UC2", "two"),
	})
	s.Add([]domain.ChatMessage{
		makeMessage("b", "UC2", "two"),
		makeMessage("c", "UC3", "three"),
	})

	if got := s.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	seen := make(map[string]int)
	for _, m := range s.Messages() {
		seen[m.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("message %q appears %d times, want 1", id, n)
		}
	}
}

func TestStoreLastFetchedIsUniqueSubsetOnly(t *testing.T) {
	s := NewStore(100)
	s.Add([]domain.ChatMessage{makeMessage("a", "UC1", "one")})

	s.Add([]domain.ChatMessage{
		makeMessage("a", "UC1", "one"),
		makeMessage("b", "UC2", "two"),
	})
	last := s.LastFetched()
	if len(last) != 1 || last[0].ID != "b" {
		t.Fatalf("LastFetched() = %v, want just message b", last)
	}
}

func TestStoreAddAllDuplicatesIsNoOp(t *testing.T) {
	s := NewStore(100)
	batch := []domain.ChatMessage{makeMessage("a", "UC1", "one")}
	s.Add(batch)
	s.Add(batch)

	if got := s.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
	if got := s.LastFetched(); len(got) != 0 {
		t.Errorf("LastFetched() = %v, want empty", got)
	}
}

func TestStoreReplayChangesNothing(t *testing.T) {
	s := NewStore(100)
	batch := []domain.ChatMessage{
		makeMessage("a", "UC1", "one"),
		makeMessage("b", "UC2", "two"),
	}
	s.Add(batch)
	before := s.Messages()

	s.Add(batch)
	after := s.Messages()

	if len(before) != len(after) {
		t.Fatalf("replay changed log size: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID {
			t.Errorf("replay changed log order at %d: %q -> %q", i, before[i].ID, after[i].ID)
		}
	}
}

func TestStoreTruncatesToLimit(t *testing.T) {
	s := NewStore(10)
	for i := 0; i < 25; i++ {
		s.Add([]domain.ChatMessage{makeMessage(fmt.Sprintf("m%02d", i), "UC1", "hi")})
	}

	if got := s.Len(); got != 10 {
		t.Fatalf("Len() = %d, want 10", got)
	}
	msgs := s.Messages()
	if msgs[0].ID != "m15" || msgs[9].ID != "m24" {
		t.Errorf("kept window = [%s..%s], want [m15..m24]", msgs[0].ID, msgs[9].ID)
	}
}

func TestStoreTruncationFreesOldIDs(t *testing.T) {
	s := NewStore(2)
	s.Add([]domain.ChatMessage{
		makeMessage("a", "UC1", "one"),
		makeMessage("b", "UC2", "two"),
		makeMessage("c", "UC3", "three"),
	})
	// "a" fell out of the window; re-adding it must work again.
	s.Add([]domain.ChatMessage{makeMessage("a", "UC1", "one")})
	if got := s.LastFetched(); len(got) != 1 || got[0].ID != "a" {
		t.Errorf("LastFetched() = %v, want message a re-admitted", got)
	}
}

func TestStoreSkipsEmptyIDs(t *testing.T) {
	s := NewStore(100)
	s.Add([]domain.ChatMessage{{ID: ""}, makeMessage("a", "UC1", "one")})
	if got := s.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestStoreReset(t *testing.T) {
	s := NewStore(100)
	s.Add([]domain.ChatMessage{makeMessage(uuid.NewString(), "UC1", "one")})
	s.Reset()

	if s.Len() != 0 || len(s.LastFetched()) != 0 {
		t.Error("expected empty store after Reset")
	}
	// Previously seen ids are admitted again after a reset.
	s.Add([]domain.ChatMessage{makeMessage("fresh", "UC1", "one")})
	if s.Len() != 1 {
		t.Error("expected message admitted after Reset")
	}
}

func TestStoreSnapshotsAreCopies(t *testing.T) {
	s := NewStore(100)
	s.Add([]domain.ChatMessage{makeMessage("a", "UC1", "one")})

	snap := s.Messages()
	snap[0].ID = "mutated"
	if s.Messages()[0].ID != "a" {
		t.Error("mutating a snapshot leaked into the store")
	}
}
