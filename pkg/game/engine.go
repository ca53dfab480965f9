// Package game implements the Very Eggs round: a turn-based elimination
// duel between the host and one viewer picked from chat. Each turn the
// acting side cracks the next egg from a randomized basket on themselves
// or on the opponent; loaded eggs cost a life, the basket refills when it
// runs dry, and the first side to zero lives loses.
package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dougneves/doug-minigames/pkg/domain"
)

// State names a position in the round lifecycle.
type State int

const (
	// StateSelecting is the pre-game mode: no round, roster open for joins.
	StateSelecting State = iota
	// StateHostTurn means the host may act.
	StateHostTurn
	// StateViewerTurn means the selected viewer may act via chat.
	StateViewerTurn
	// StateResolving is the pacing pause between an action and the next turn.
	StateResolving
	// StateOver means one side reached zero lives.
	StateOver
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateHostTurn:
		return "host-turn"
	case StateViewerTurn:
		return "viewer-turn"
	case StateResolving:
		return "resolving"
	case StateOver:
		return "over"
	}
	return "unknown"
}

// Actor is one of the two sides of a round.
type Actor int

const (
	ActorNone Actor = iota
	ActorHost
	ActorViewer
)

// Target is where the acting side cracks the egg.
type Target int

const (
	// TargetSelf cracks the egg on the acting side's own head.
	TargetSelf Target = iota
	// TargetOpponent throws the egg at the other side.
	TargetOpponent
)

const (
	// MaxLives is each side's starting (and maximum) life count.
	MaxLives = 3
	// InitialEggCount is the basket size at round start.
	InitialEggCount = 10
	// RestockMinEggs and RestockMaxEggs bound the refill size when the
	// basket empties mid-round.
	RestockMinEggs = 5
	RestockMaxEggs = 7
	// TurnDelay paces the round for viewers between an action and the
	// next turn.
	TurnDelay = 5 * time.Second
)

// Default in-round chat commands for the selected viewer.
const (
	DefaultThrowCommand = "!tacar"
	DefaultBreakCommand = "!quebrar"
)

// Egg is a single binary-outcome item. Loaded eggs cost a life.
type Egg struct {
	ID     int
	Loaded bool
}

// Engine owns the round state. All mutation goes through Start,
// ResolveAction, FinishTurn, CommandFromChat, and Reset; everything else
// reads snapshots. The epoch counter invalidates pacing timers armed
// before a reset, so a stale timer can never touch a newer round.
type Engine struct {
	rng *rand.Rand

	state       State
	player      domain.Player
	hasPlayer   bool
	turn        Actor
	hostLives   int
	viewerLives int
	eggs        []Egg
	log         []string
	epoch       int
	nextEggID   int
	lastSeenID  string

	hostName string
	throwCmd string
	breakCmd string
}

// NewEngine creates an engine in selecting mode. A nil rng gets a
// time-seeded source; tests pass a fixed one.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>32))
	}
	return &Engine{
		rng:      rng,
		hostName: "host",
		throwCmd: DefaultThrowCommand,
		breakCmd: DefaultBreakCommand,
	}
}

// SetHostName sets the name used for the host in log lines.
func (e *Engine) SetHostName(name string) {
	if strings.TrimSpace(name) != "" {
		e.hostName = name
	}
}

// SetCommands overrides the viewer's in-round chat commands. Empty
// strings keep the current values.
func (e *Engine) SetCommands(throwCmd, breakCmd string) {
	if strings.TrimSpace(throwCmd) != "" {
		e.throwCmd = normalize(throwCmd)
	}
	if strings.TrimSpace(breakCmd) != "" {
		e.breakCmd = normalize(breakCmd)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Turn returns the side currently authorized to act. ActorNone outside a
// live round.
func (e *Engine) Turn() Actor { return e.turn }

// HostLives returns the host's remaining lives.
func (e *Engine) HostLives() int { return e.hostLives }

// ViewerLives returns the viewer's remaining lives.
func (e *Engine) ViewerLives() int { return e.viewerLives }

// EggsLeft returns the number of eggs remaining in the basket.
func (e *Engine) EggsLeft() int { return len(e.eggs) }

// Player returns the selected viewer; ok is false in selecting mode.
func (e *Engine) Player() (p domain.Player, ok bool) {
	return e.player, e.hasPlayer
}

// Log returns a snapshot of the round's message log, oldest first.
func (e *Engine) Log() []string {
	out := make([]string, len(e.log))
	copy(out, e.log)
	return out
}

// Epoch returns the current round epoch. Pacing timers carry the epoch
// current when armed; FinishTurn drops stale ones.
func (e *Engine) Epoch() int { return e.epoch }

// GenerateEggs builds a basket of n eggs with a loaded count drawn
// uniformly from [1, n-1], then shuffled so no position is biased. A
// single egg is a coin flip; n < 1 yields an empty basket.
func (e *Engine) GenerateEggs(n int) []Egg {
	if n < 1 {
		return nil
	}
	loaded := 1
	if n == 1 {
		loaded = e.rng.IntN(2)
	} else {
		loaded = 1 + e.rng.IntN(n-1)
	}

	eggs := make([]Egg, n)
	for i := range eggs {
		e.nextEggID++
		eggs[i] = Egg{ID: e.nextEggID, Loaded: i < loaded}
	}
	e.rng.Shuffle(n, func(i, j int) {
		eggs[i], eggs[j] = eggs[j], eggs[i]
	})
	return eggs
}

// Start begins a round against the selected player: full lives on both
// sides, a fresh basket, host acts first.
func (e *Engine) Start(p domain.Player) {
	e.epoch++
	e.player = p
	e.hasPlayer = true
	e.hostLives = MaxLives
	e.viewerLives = MaxLives
	e.eggs = e.GenerateEggs(InitialEggCount)
	e.log = nil
	e.lastSeenID = ""
	e.turn = ActorHost
	e.state = StateHostTurn
	e.logf("%s challenges %s! %d eggs in the basket.", e.hostName, p.DisplayName, len(e.eggs))
}

// ResolveAction applies the acting side's choice to the front egg. It is
// a silent no-op (returns false) when no turn is live, the basket is
// empty, or a resolution is already under way — those arise from UI races
// the engine absorbs. On success the engine enters the resolving pause;
// the owner arms a TurnDelay timer and calls FinishTurn when it fires.
func (e *Engine) ResolveAction(target Target) bool {
	if e.state != StateHostTurn && e.state != StateViewerTurn {
		return false
	}
	if len(e.eggs) == 0 {
		return false
	}

	egg := e.eggs[0]
	e.eggs = e.eggs[1:]

	affected := e.turn
	if target == TargetOpponent {
		affected = other(e.turn)
	}

	if target == TargetOpponent {
		e.logf("%s throws an egg at %s...", e.name(e.turn), e.name(affected))
	} else {
		e.logf("%s cracks an egg on their own head...", e.name(e.turn))
	}

	if egg.Loaded {
		e.loseLife(affected)
		e.logf("splat! %s loses a life.", e.name(affected))
	} else {
		e.logf("nothing inside. %s is safe.", e.name(affected))
	}

	e.state = StateResolving
	return true
}

// FinishTurn completes a resolution after the pacing delay: terminal
// check first, then restock if the basket emptied, then the turn flips.
// A stale epoch means the round was reset while the timer was pending.
func (e *Engine) FinishTurn(epoch int) {
	if epoch != e.epoch || e.state != StateResolving {
		return
	}

	if e.hostLives == 0 || e.viewerLives == 0 {
		winner := ActorHost
		if e.hostLives == 0 {
			winner = ActorViewer
		}
		e.logf("%s wins the round!", e.name(winner))
		e.turn = ActorNone
		e.state = StateOver
		return
	}

	if len(e.eggs) == 0 {
		n := RestockMinEggs + e.rng.IntN(RestockMaxEggs-RestockMinEggs+1)
		e.eggs = e.GenerateEggs(n)
		e.logf("the basket is refilled with %d eggs.", n)
	}

	e.turn = other(e.turn)
	if e.turn == ActorHost {
		e.state = StateHostTurn
	} else {
		e.state = StateViewerTurn
	}
}

// CommandFromChat inspects the newest entry of a last-fetched batch for
// one of the selected viewer's in-round commands. Only the newest message
// is considered per check; a viewer spamming commands between polls gets
// only the latest one counted. Each message id is consumed at most once.
func (e *Engine) CommandFromChat(batch []domain.ChatMessage) (Target, bool) {
	if e.state != StateViewerTurn || len(e.eggs) == 0 || len(batch) == 0 {
		return 0, false
	}

	newest := batch[len(batch)-1]
	if newest.ID == "" || newest.ID == e.lastSeenID {
		return 0, false
	}
	e.lastSeenID = newest.ID

	if newest.Author == nil || newest.Author.ChannelID != e.player.ChannelID {
		return 0, false
	}
	switch normalize(newest.Text()) {
	case e.throwCmd:
		return TargetOpponent, true
	case e.breakCmd:
		return TargetSelf, true
	}
	return 0, false
}

// Reset abandons the round and returns to selecting mode. Bumping the
// epoch cancels any pending pacing timer.
func (e *Engine) Reset() {
	e.epoch++
	e.state = StateSelecting
	e.turn = ActorNone
	e.player = domain.Player{}
	e.hasPlayer = false
	e.hostLives = 0
	e.viewerLives = 0
	e.eggs = nil
	e.log = nil
	e.lastSeenID = ""
}

func (e *Engine) loseLife(a Actor) {
	switch a {
	case ActorHost:
		if e.hostLives > 0 {
			e.hostLives--
		}
	case ActorViewer:
		if e.viewerLives > 0 {
			e.viewerLives--
		}
	}
}

func (e *Engine) name(a Actor) string {
	switch a {
	case ActorHost:
		return e.hostName
	case ActorViewer:
		return e.player.DisplayName
	}
	return "nobody"
}

func (e *Engine) logf(format string, args ...any) {
	e.log = append(e.log, fmt.Sprintf(format, args...))
}

func other(a Actor) Actor {
	if a == ActorHost {
		return ActorViewer
	}
	return ActorHost
}
