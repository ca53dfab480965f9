package chat

import (
	"context"
	"errors"
	"time"

	"github.com/dougneves/doug-minigames/pkg/domain"
	"github.com/dougneves/doug-minigames/pkg/youtube"
)

// PollerState names a position in the poller's lifecycle.
type PollerState int

const (
	// PollerIdle means no polling session is active.
	PollerIdle PollerState = iota
	// PollerFetching means a fetch is in flight.
	PollerFetching
	// PollerScheduled means the next cycle is armed and waiting.
	PollerScheduled
	// PollerDisabled means upstream reported the chat gone; sticky until
	// an explicit Start.
	PollerDisabled
	// PollerFailed means polling cannot run at all (e.g. missing
	// credentials); sticky until an explicit Start.
	PollerFailed
)

func (s PollerState) String() string {
	switch s {
	case PollerIdle:
		return "idle"
	case PollerFetching:
		return "fetching"
	case PollerScheduled:
		return "scheduled"
	case PollerDisabled:
		return "disabled"
	case PollerFailed:
		return "failed"
	}
	return "unknown"
}

const (
	// MinPollInterval is the floor on the server-advised interval, to
	// respect upstream rate limits.
	MinPollInterval = 5 * time.Second
	// DefaultPollInterval paces retries when the server gives no advice.
	DefaultPollInterval = 5 * time.Second
	// startDebounce collapses rapid repeated Start calls into one.
	startDebounce = 100 * time.Millisecond
)

// Page is one fetched batch of messages plus scheduling hints.
type Page struct {
	Messages        []domain.ChatMessage
	NextPageToken   string
	PollingInterval time.Duration
}

// FetchFunc is the external message-fetch operation. A chat-disabled
// condition is signalled with youtube.ErrChatDisabled; any other error is
// treated as transient.
type FetchFunc func(ctx context.Context, pageToken string) (*Page, error)

// Next tells the poller's owner what to do after a finished cycle.
type Next struct {
	Delay      time.Duration
	Reschedule bool
}

// Poller is the fetch-cycle state machine. It never does I/O itself: the
// owner runs the fetch between BeginCycle and FinishCycle, so the machine
// stays synchronous and every transition is strictly ordered. Scheduled
// cycles carry the epoch current at arming time; bumping the epoch (Start,
// Stop) cancels them without touching one already in flight.
type Poller struct {
	store *Store

	state       PollerState
	pageToken   string
	inFlight    bool
	epoch       int
	lastStart   time.Time
	lastErr     error
	minInterval time.Duration

	now func() time.Time
}

// NewPoller creates an idle poller writing into store.
func NewPoller(store *Store) *Poller {
	return &Poller{
		store:       store,
		minInterval: MinPollInterval,
		now:         time.Now,
	}
}

// SetMinInterval overrides the enforced minimum between cycles.
// Non-positive values are ignored.
func (p *Poller) SetMinInterval(d time.Duration) {
	if d > 0 {
		p.minInterval = d
	}
}

// State returns the current lifecycle state.
func (p *Poller) State() PollerState { return p.state }

// Epoch returns the current scheduling epoch. Ticks armed under an older
// epoch are stale and must be dropped.
func (p *Poller) Epoch() int { return p.epoch }

// Err returns the most recent transient fetch error, or nil.
func (p *Poller) Err() error { return p.lastErr }

// Start activates a fresh polling session: the pagination cursor and the
// Store are cleared and the first cycle is armed. Calls arriving within
// the debounce window of a previous Start collapse into it (ok=false).
// Start recovers from the disabled and failed states.
func (p *Poller) Start() (epoch int, ok bool) {
	now := p.now()
	if !p.lastStart.IsZero() && now.Sub(p.lastStart) < startDebounce {
		return p.epoch, false
	}
	p.lastStart = now
	p.epoch++
	p.pageToken = ""
	p.lastErr = nil
	p.store.Reset()
	p.state = PollerScheduled
	return p.epoch, true
}

// Stop cancels any armed cycle and returns to idle. Fetched messages are
// kept; a fetch already in flight is not cancelled and its result will
// still be merged when it lands.
func (p *Poller) Stop() {
	p.epoch++
	p.state = PollerIdle
}

// Fail marks the poller unable to run (configuration error). Sticky until
// an explicit Start.
func (p *Poller) Fail(err error) {
	p.epoch++
	p.lastErr = err
	p.state = PollerFailed
}

// BeginCycle claims the in-flight slot for a scheduled cycle and returns
// the pagination cursor to fetch with. It is a silent no-op (ok=false)
// when the epoch is stale, a fetch is already in flight, or the poller is
// not in a runnable state.
func (p *Poller) BeginCycle(epoch int) (pageToken string, ok bool) {
	if epoch != p.epoch || p.inFlight || p.state != PollerScheduled {
		return "", false
	}
	p.inFlight = true
	p.state = PollerFetching
	return p.pageToken, true
}

// FinishCycle applies a completed fetch. Delivered messages are always
// merged into the Store, even after a Stop (merges are idempotent by id).
// When a Start replaced the session mid-fetch, the landing result also
// reschedules the restarted session's first cycle.
// A chat-disabled error parks the poller in the sticky disabled state.
// Transient errors clear the pagination cursor, so the next cycle does
// not resume from a possibly-stale position, and back off at twice the
// default interval. Success schedules the next cycle after the advised
// interval, floored at the minimum.
func (p *Poller) FinishCycle(page *Page, err error) Next {
	if !p.inFlight {
		return Next{}
	}
	p.inFlight = false

	// A Start during the fetch replaced the session: the landing result
	// belongs to the old one. Merge whatever it delivered (idempotent by
	// id) and revive the new session's cycle, which the in-flight mutex
	// turned away while this fetch held the slot.
	if p.state == PollerScheduled {
		if err == nil && page != nil {
			p.store.Add(page.Messages)
		}
		return Next{Delay: p.minInterval, Reschedule: true}
	}

	if err != nil {
		if errors.Is(err, youtube.ErrChatDisabled) {
			p.lastErr = err
			p.state = PollerDisabled
			return Next{}
		}
		p.lastErr = err
		p.pageToken = ""
		if p.state != PollerFetching {
			return Next{}
		}
		p.state = PollerScheduled
		return Next{Delay: 2 * DefaultPollInterval, Reschedule: true}
	}

	p.lastErr = nil
	if page != nil {
		p.store.Add(page.Messages)
	}
	if p.state != PollerFetching {
		// Stopped while the fetch was in flight: the merge above keeps
		// the history current but no further cycle is armed.
		return Next{}
	}

	p.pageToken = page.NextPageToken
	delay := page.PollingInterval
	if delay < p.minInterval {
		delay = p.minInterval
	}
	p.state = PollerScheduled
	return Next{Delay: delay, Reschedule: true}
}
