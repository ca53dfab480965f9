// Package chat turns the upstream live-chat API into a deduplicated,
// ordered message stream and derives gameplay signals from it. The Store
// holds the bounded all-time log, the Poller owns fetch scheduling, and
// the Listener builds the joined-player roster.
package chat

import "github.com/dougneves/doug-minigames/pkg/domain"

// DefaultStoreLimit bounds the all-time message log.
const DefaultStoreLimit = 100

// Store holds the deduplicated chat log plus the batch added by the most
// recent merge. It is a pure state container: the Poller is its only
// writer, everything else reads snapshots.
type Store struct {
	messages    []domain.ChatMessage
	lastFetched []domain.ChatMessage
	seen        map[string]bool
	limit       int
}

// NewStore creates a store bounded to the given number of messages.
// A non-positive limit falls back to DefaultStoreLimit.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = DefaultStoreLimit
	}
	return &Store{
		seen:  make(map[string]bool),
		limit: limit,
	}
}

// Add merges a batch into the log, dropping any message whose id is
// already present. The unique subset becomes the "last fetched" view;
// when nothing new arrives the merge is a no-op and the view is empty.
func (s *Store) Add(batch []domain.ChatMessage) {
	var unique []domain.ChatMessage
	for _, msg := range batch {
		if msg.ID == "" || s.seen[msg.ID] {
			continue
		}
		s.seen[msg.ID] = true
		unique = append(unique, msg)
	}

	s.lastFetched = unique
	if len(unique) == 0 {
		return
	}

	s.messages = append(s.messages, unique...)
	if len(s.messages) > s.limit {
		trimmed := make([]domain.ChatMessage, s.limit)
		copy(trimmed, s.messages[len(s.messages)-s.limit:])
		s.messages = trimmed
		s.seen = make(map[string]bool, len(trimmed))
		for _, msg := range trimmed {
			s.seen[msg.ID] = true
		}
	}
}

// Messages returns a snapshot of the all-time log, oldest first.
func (s *Store) Messages() []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// LastFetched returns a snapshot of the unique subset added by the most
// recent merge. Consumers treat it as a fresh work queue.
func (s *Store) LastFetched() []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(s.lastFetched))
	copy(out, s.lastFetched)
	return out
}

// Len returns the number of messages in the all-time log.
func (s *Store) Len() int {
	return len(s.messages)
}

// Reset clears the log and the last-fetched view.
func (s *Store) Reset() {
	s.messages = nil
	s.lastFetched = nil
	s.seen = make(map[string]bool)
}
