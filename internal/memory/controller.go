package memory

import (
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Default delays for the scheduled transitions.
const (
	DefaultMatchDelay = 500 * time.Millisecond
	DefaultResetDelay = 1000 * time.Millisecond
)

// ErrClosed is returned when starting a game on a closed Controller.
var ErrClosed = errors.New("memory: controller closed")

// Options configures a Controller. Zero fields fall back to defaults.
type Options struct {
	Clock      Clock
	Store      BestScoreStore
	Recorder   CompletionRecorder
	Deck       DeckSpec
	MatchDelay time.Duration
	ResetDelay time.Duration
	Seed       int64 // 0 seeds from the clock
	Logger     *log.Logger

	// OnChange is called with a snapshot after every intent or timer that
	// changed the state. It runs outside the controller lock.
	OnChange func(State)
}

// Controller owns the authoritative game state. Every transition goes
// through dispatch under mu, including the ones fired by timers.
type Controller struct {
	mu sync.Mutex

	state    State
	clock    Clock
	store    BestScoreStore
	recorder CompletionRecorder
	deck     DeckSpec
	rng      *rand.Rand
	logger   *log.Logger
	onChange func(State)

	matchDelay time.Duration
	resetDelay time.Duration

	// Each pending timer is paired with a generation. Cancelling bumps the
	// generation, so a callback that lost the race with Stop is a no-op.
	checkTimer Timer
	checkGen   uint64
	resetTimer Timer
	resetGen   uint64

	closed bool
}

// NewController creates a controller with best scores loaded from opts.Store.
func NewController(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Deck.Pairs == nil || opts.Deck.Palette == nil {
		opts.Deck = DefaultDeckSpec()
	}
	if opts.MatchDelay <= 0 {
		opts.MatchDelay = DefaultMatchDelay
	}
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = DefaultResetDelay
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = opts.Clock.Now().UnixNano()
	}

	return &Controller{
		state:      LoadInitialState(opts.Store, opts.Logger),
		clock:      opts.Clock,
		store:      opts.Store,
		recorder:   opts.Recorder,
		deck:       opts.Deck,
		rng:        rand.New(rand.NewSource(seed)),
		logger:     opts.Logger,
		onChange:   opts.OnChange,
		matchDelay: opts.MatchDelay,
		resetDelay: opts.ResetDelay,
	}
}

// State returns a deep copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// StartGame deals a new deck for d and starts the clock.
func (c *Controller) StartGame(d Difficulty) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	err := c.startLocked(d)
	snap := c.state.Clone()
	c.mu.Unlock()

	if err != nil {
		return err
	}
	c.notify(snap)
	return nil
}

// FlipCard flips the card with the given id. If no game is running, one is
// started first with the current difficulty.
func (c *Controller) FlipCard(id uuid.UUID) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	if !c.state.IsPlaying {
		if err := c.startLocked(c.state.Difficulty); err != nil {
			c.logger.Error("auto-start failed", "difficulty", c.state.Difficulty, "error", err)
			c.mu.Unlock()
			return
		}
	}

	// A new flip supersedes a pending mismatch reset: apply it now so the
	// old pair goes face down before the next one is built.
	if idx := c.state.CardIndex(id); idx >= 0 && !c.state.Cards[idx].IsMatched && len(c.state.Mismatched) > 0 {
		c.stopReset()
		c.dispatch(ResetFlippedCards{})
	}

	c.dispatch(FlipCard{CardID: id})
	snap := c.state.Clone()
	c.mu.Unlock()

	c.notify(snap)
}

// ResetGame discards the current game and returns to the initial state.
func (c *Controller) ResetGame() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.stopAll()
	c.dispatch(ResetGame{})
	snap := c.state.Clone()
	c.mu.Unlock()

	c.notify(snap)
}

// Close cancels pending timers. Later intents and timer callbacks are
// ignored, and StartGame returns ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAll()
	c.closed = true
}

func (c *Controller) startLocked(d Difficulty) error {
	deck, err := c.deck.GenerateDeck(d, c.rng)
	if err != nil {
		return err
	}
	c.stopAll()
	c.dispatch(StartGame{Difficulty: d, Deck: deck, At: c.clock.Now()})
	c.logger.Debug("game started", "difficulty", d, "cards", len(deck))
	return nil
}

// dispatch applies a and runs the effects the transition calls for.
// Callers hold mu.
func (c *Controller) dispatch(a Action) {
	prev := c.state
	next := Reduce(prev, a)
	c.state = next

	if len(prev.FlippedCards) != 2 && len(next.FlippedCards) == 2 {
		c.armCheck()
	}

	if _, ok := a.(CheckMatch); ok && len(prev.FlippedCards) == 2 && len(next.Mismatched) > 0 {
		c.armReset()
	}

	if prev.EndTime == nil && next.EndTime != nil && next.IsComplete() {
		c.completeLocked()
	}
}

// completeLocked runs exactly once per finished game.
func (c *Controller) completeLocked() {
	before := c.state.BestScore()
	c.dispatch(UpdateBestScore{})
	after := c.state.BestScore()

	improved := after != nil && (before == nil || *after < *before)
	elapsed, _ := c.state.Duration()

	c.logger.Info("game complete",
		"difficulty", c.state.Difficulty,
		"time", FormatDuration(elapsed),
		"moves", c.state.Moves,
		"best", improved,
	)

	if improved && c.store != nil {
		if err := c.store.SaveBestScores(c.state.BestScores.clone()); err != nil {
			c.logger.Warn("could not save best scores", "error", err)
		}
	}

	if c.recorder != nil {
		err := c.recorder.RecordCompletion(Completion{
			Difficulty: c.state.Difficulty,
			Duration:   elapsed,
			Moves:      c.state.Moves,
			NewBest:    improved,
		})
		if err != nil {
			c.logger.Warn("could not record completion", "error", err)
		}
	}
}

func (c *Controller) armCheck() {
	c.stopCheck()
	gen := c.checkGen
	c.checkTimer = c.clock.AfterFunc(c.matchDelay, func() {
		c.fire(&c.checkGen, gen, &c.checkTimer, func() Action {
			return CheckMatch{At: c.clock.Now()}
		})
	})
	c.logger.Debug("match check scheduled", "delay", c.matchDelay)
}

func (c *Controller) armReset() {
	c.stopReset()
	gen := c.resetGen
	c.resetTimer = c.clock.AfterFunc(c.resetDelay, func() {
		c.fire(&c.resetGen, gen, &c.resetTimer, func() Action {
			return ResetFlippedCards{}
		})
	})
	c.logger.Debug("mismatch reset scheduled", "delay", c.resetDelay)
}

// fire runs a timer callback if its generation is still current.
func (c *Controller) fire(current *uint64, gen uint64, slot *Timer, build func() Action) {
	c.mu.Lock()
	if c.closed || *current != gen {
		c.mu.Unlock()
		return
	}
	*slot = nil
	*current++
	c.dispatch(build())
	snap := c.state.Clone()
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Controller) stopCheck() {
	if c.checkTimer != nil {
		c.checkTimer.Stop()
		c.checkTimer = nil
	}
	c.checkGen++
}

func (c *Controller) stopReset() {
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
	c.resetGen++
}

func (c *Controller) stopAll() {
	c.stopCheck()
	c.stopReset()
}

func (c *Controller) notify(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}
