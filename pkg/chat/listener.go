package chat

import (
	"strings"

	"github.com/dougneves/doug-minigames/pkg/domain"
)

// DefaultJoinCommand registers a viewer as a candidate player.
const DefaultJoinCommand = "!jogar"

// Listener scans last-fetched batches for the join command and accumulates
// the roster of distinct players who issued it, first come first served.
// Every message is consumed at most once, tracked by id.
type Listener struct {
	command   string
	listening bool
	processed map[string]bool
	roster    []domain.Player
	joined    map[string]bool
}

// NewListener creates a listener for the given command text. An empty
// command falls back to DefaultJoinCommand.
func NewListener(command string) *Listener {
	if strings.TrimSpace(command) == "" {
		command = DefaultJoinCommand
	}
	return &Listener{
		command:   normalizeCommand(command),
		processed: make(map[string]bool),
		joined:    make(map[string]bool),
	}
}

func normalizeCommand(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Command returns the normalized join command.
func (l *Listener) Command() string { return l.command }

// Listening reports whether incoming batches are being consumed.
func (l *Listener) Listening() bool { return l.listening }

// SetListening toggles consumption. While off, batches passed to Process
// are dropped entirely, not buffered.
func (l *Listener) SetListening(on bool) { l.listening = on }

// Process consumes a last-fetched batch. Messages are marked processed
// whether or not they match, so later batches can never replay them.
// A matching message from an author already on the roster is a no-op.
func (l *Listener) Process(batch []domain.ChatMessage) {
	if !l.listening {
		return
	}
	for _, msg := range batch {
		if msg.ID == "" || l.processed[msg.ID] {
			continue
		}
		l.processed[msg.ID] = true

		if msg.Author == nil || normalizeCommand(msg.Text()) != l.command {
			continue
		}
		if l.joined[msg.Author.ChannelID] {
			continue
		}
		l.joined[msg.Author.ChannelID] = true
		l.roster = append(l.roster, domain.PlayerFromAuthor(*msg.Author))
	}
}

// Players returns the roster in join order.
func (l *Listener) Players() []domain.Player {
	out := make([]domain.Player, len(l.roster))
	copy(out, l.roster)
	return out
}

// Reset clears the roster and the processed-id set.
func (l *Listener) Reset() {
	l.roster = nil
	l.processed = make(map[string]bool)
	l.joined = make(map[string]bool)
}
