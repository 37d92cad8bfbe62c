package spinpick

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/arloliu/spinpick/internal/assignment"
	"github.com/arloliu/spinpick/internal/hooks"
	"github.com/arloliu/spinpick/internal/logging"
	"github.com/arloliu/spinpick/internal/metrics"
	"github.com/arloliu/spinpick/internal/spin"
	"github.com/arloliu/spinpick/strategy"
	"github.com/arloliu/spinpick/types"
	"github.com/google/uuid"
	"lukechampine.com/frand"
)

// Engine runs a balanced wheel-spin grouping game.
//
// The engine owns the roster, the groups, the wheel rotation and the assignment
// computed at the first spin of a game. Callers mutate that state only through
// engine operations and read it through copy-returning accessors.
//
// Time inside the engine moves only through Advance. A Runner calls Advance
// from a ticker; tests call it with fixed deltas.
//
// Thread Safety:
//   - All methods are safe for concurrent use.
//   - Hooks and subscriber notifications run after the engine lock is released,
//     so hooks may call back into the engine.
//   - Notifications from all callers go through one queue and are delivered in
//     the order the state changes happened. A caller that finds the queue
//     already being drained leaves its notifications to that drainer.
type Engine struct {
	cfg         Config
	partitioner Partitioner
	clock       Clock
	logger      Logger
	metrics     MetricsCollector
	hooks       Hooks

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	pending     notifications
	dispatching bool
	board       *assignment.Board
	cache       assignment.Cache
	gameID      string
	animator    *spin.Animator
	wheel       *spin.Spin
	spunAt      time.Time
	rotation    float64
	reveal      *pendingReveal
	closed      bool

	phases *assignment.PhaseMachine
	events *assignment.Feed[AssignmentEvent]
}

// pendingReveal is an entry waiting out a reveal delay before assignment.
type pendingReveal struct {
	entry     Entry
	remaining time.Duration
}

// notifications collects callbacks produced while the lock is held so they can
// run after it is released, in the order they were queued.
type notifications []func()

// NewEngine creates a new engine.
//
// Missing configuration values are filled with defaults (cfg is modified in
// place) and the result is validated.
//
// Parameters:
//   - cfg: Configuration (required)
//   - opts: Optional dependencies (partitioner, random source, logger, metrics, hooks)
//
// Returns:
//   - *Engine: Engine with an empty roster, in PhaseEmpty
//   - error: ErrInvalidConfig if cfg is nil or invalid
//
// Example:
//
//	cfg := spinpick.DefaultConfig()
//	cfg.GroupCount = 3
//	engine, err := spinpick.NewEngine(&cfg, spinpick.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
func NewEngine(cfg *Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}

	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	cfg.ValidateWithWarnings(loggerInstance)

	partitioner := options.partitioner
	if partitioner == nil {
		partitioner = strategy.NewBalanced(strategy.WithBalancedLogger(loggerInstance))
	}

	random := options.random
	if random == nil {
		random = frandSource{}
	}

	clock := options.clock
	if clock == nil {
		clock = systemClock{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	e := &Engine{
		cfg:         *cfg,
		partitioner: partitioner,
		clock:       clock,
		logger:      loggerInstance,
		metrics:     metricsCollector,
		hooks:       hooks.Fill(options.hooks),
		ctx:         ctx,
		cancel:      cancel,
		board:       assignment.NewBoard(cfg.GroupCount, cfg.MinScore),
		gameID:      uuid.NewString(),
		animator: spin.NewAnimator(spin.Settings{
			Duration: cfg.SpinDuration,
			MinTurns: cfg.MinTurns,
			MaxTurns: cfg.MaxTurns,
		}, random),
		phases: assignment.NewPhaseMachine(PhaseEmpty, loggerInstance, metricsCollector),
		events: assignment.NewFeed[AssignmentEvent](cfg.EventBufferSize, metricsCollector.RecordEventDropped),
	}

	return e, nil
}

// RequestSpin starts a wheel spin over the current roster.
//
// On the first spin of a game the partitioner runs over the roster as it stands
// and its result is frozen until ResetGame or SetGroupCount. Every settled spin
// then places the selected entry into its precomputed group.
//
// Returns:
//   - error: nil if a spin started; ErrSpinInProgress while a spin or reveal is
//     in flight, ErrEmptyRoster when there is nothing to spin, ErrClosed after
//     Close. In every error case the engine state is unchanged.
func (e *Engine) RequestSpin() error {
	err := func() error {
		e.mu.Lock()
		defer e.mu.Unlock()

		if e.closed {
			return ErrClosed
		}
		if e.phases.Phase().Busy() {
			e.logger.Debug("spin request ignored", "phase", e.phases.Phase())
			return ErrSpinInProgress
		}
		roster := e.board.Roster()
		if len(roster) == 0 {
			return ErrEmptyRoster
		}

		if err := e.freezeAssignment(&e.pending); err != nil {
			return err
		}

		wheel, err := e.animator.Start(len(roster), e.rotation)
		if err != nil {
			return err
		}
		e.wheel = wheel
		e.spunAt = e.clock.Now()
		e.metrics.RecordSpinStarted(len(roster))
		e.logger.Debug("spin started",
			"gameId", e.gameID,
			"entries", len(roster),
			"from", wheel.Start(),
			"target", wheel.Target(),
		)
		e.transition(PhaseSpinning, &e.pending)

		return nil
	}()

	e.dispatch()

	return err
}

// Advance moves engine time forward by delta.
//
// It steps the wheel animation while spinning and counts down a pending reveal
// while one is scheduled. Settling and reveals happen inside Advance, so all
// group mutations occur on the goroutine driving it. Advance is a no-op when
// the engine is at rest or closed.
//
// Parameters:
//   - delta: Elapsed time since the previous call (negative values are ignored)
func (e *Engine) Advance(delta time.Duration) {
	func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		if e.closed || delta < 0 {
			return
		}

		switch e.phases.Phase() {
		case PhaseSpinning:
			rotation, done := e.wheel.Advance(delta)
			e.rotation = rotation
			if done {
				e.settle(&e.pending)
			}
		case PhaseRevealingLast, PhaseSettling:
			e.reveal.remaining -= delta
			if e.reveal.remaining <= 0 {
				e.completeReveal(&e.pending)
			}
		default:
		}
	}()

	e.dispatch()
}

// SetGroupCount changes the number of groups.
//
// All groups are emptied, any in-flight spin or pending reveal is cancelled, and
// the frozen assignment is discarded. The next spin partitions the roster as it
// stands then. Entries already placed in groups are not returned to the roster.
//
// Parameters:
//   - count: New group count (>= MinGroupCount)
//
// Returns:
//   - error: ErrInvalidGroupCount (state unchanged) or ErrClosed
func (e *Engine) SetGroupCount(count int) error {
	if count < MinGroupCount {
		return fmt.Errorf("set group count %d: %w", count, ErrInvalidGroupCount)
	}

	err := func() error {
		e.mu.Lock()
		defer e.mu.Unlock()

		if e.closed {
			return ErrClosed
		}

		e.cancelInFlight()
		e.cfg.GroupCount = count
		e.board.ResetGroups(count)
		e.invalidate("group count changed")
		e.logger.Info("group count changed", "groups", count)
		e.transition(e.restingPhase(), &e.pending)

		return nil
	}()

	e.dispatch()

	return err
}

// ResetGame clears the roster and all groups and discards the frozen assignment.
//
// The group count is kept. Any in-flight spin or pending reveal is cancelled.
func (e *Engine) ResetGame() error {
	err := func() error {
		e.mu.Lock()
		defer e.mu.Unlock()

		if e.closed {
			return ErrClosed
		}

		e.cancelInFlight()
		e.board.Clear()
		e.invalidate("game reset")
		e.metrics.RecordRosterSize(0)
		e.logger.Info("game reset", "groups", e.board.GroupCount())
		e.transition(PhaseEmpty, &e.pending)

		return nil
	}()

	e.dispatch()

	return err
}

// AddEntry adds an entry to the roster.
//
// The name is trimmed of surrounding whitespace and must be non-empty and not
// already used on the roster or in a group. Scores below Config.MinScore are
// raised to it.
//
// Entries added after the first spin of a game are not part of the frozen
// assignment; when spun they go to the lightest group at that moment.
//
// Returns:
//   - Entry: The entry as stored
//   - error: ErrInvalidEntry, ErrDuplicateEntry, ErrSpinInProgress or ErrClosed
func (e *Engine) AddEntry(name string, score int) (Entry, error) {
	entry, err := func() (Entry, error) {
		e.mu.Lock()
		defer e.mu.Unlock()

		if err := e.checkAtRest(); err != nil {
			return Entry{}, err
		}

		entry, err := e.board.Add(name, score)
		if err != nil {
			return Entry{}, err
		}
		e.metrics.RecordRosterSize(e.board.Len())
		e.logger.Debug("entry added", "entry", entry.Name, "score", entry.Score, "roster", e.board.Len())
		e.transition(e.restingPhase(), &e.pending)

		return entry, nil
	}()

	e.dispatch()

	return entry, err
}

// RemoveEntry removes the roster entry at index without assigning it.
//
// Returns:
//   - Entry: The removed entry
//   - error: ErrEntryIndexOutOfRange, ErrSpinInProgress or ErrClosed
func (e *Engine) RemoveEntry(index int) (Entry, error) {
	entry, err := func() (Entry, error) {
		e.mu.Lock()
		defer e.mu.Unlock()

		if err := e.checkAtRest(); err != nil {
			return Entry{}, err
		}

		entry, err := e.board.RemoveAt(index)
		if err != nil {
			return Entry{}, err
		}
		e.metrics.RecordRosterSize(e.board.Len())
		e.logger.Debug("entry removed", "entry", entry.Name, "roster", e.board.Len())
		e.transition(e.restingPhase(), &e.pending)

		return entry, nil
	}()

	e.dispatch()

	return entry, err
}

// AssignToGroup places the roster entry at index into a group without spinning.
//
// The receiving group is the one with the fewest members, then the lowest
// total score, then the lowest index. Manual placements bypass the frozen
// assignment.
//
// Returns:
//   - AssignmentEvent: The placement, with Manual set
//   - error: ErrEntryIndexOutOfRange, ErrSpinInProgress or ErrClosed
func (e *Engine) AssignToGroup(index int) (AssignmentEvent, error) {
	ev, err := func() (AssignmentEvent, error) {
		e.mu.Lock()
		defer e.mu.Unlock()

		if err := e.checkAtRest(); err != nil {
			return AssignmentEvent{}, err
		}

		entry, err := e.board.RemoveAt(index)
		if err != nil {
			return AssignmentEvent{}, err
		}
		group := e.board.ManualTarget()
		e.board.Place(entry, group)

		ev := AssignmentEvent{
			GameID:     e.gameID,
			Entry:      entry,
			GroupIndex: group,
			Manual:     true,
			Remaining:  e.board.Len(),
		}
		e.recordAssignment(ev, types.AssignmentPathManual, &e.pending)
		e.transition(e.restingPhase(), &e.pending)

		return ev, nil
	}()

	e.dispatch()

	return ev, err
}

// LoadRoster appends every entry listed by src to the roster.
//
// Invalid or duplicate entries are skipped; their errors are joined into the
// returned error while the valid entries are still added.
//
// Parameters:
//   - ctx: Context for the source lookup
//   - src: Roster source
//
// Returns:
//   - int: Number of entries added
//   - error: Source error, ErrRosterSourceRequired, ErrSpinInProgress, ErrClosed,
//     or the joined per-entry errors
func (e *Engine) LoadRoster(ctx context.Context, src RosterSource) (int, error) {
	if src == nil {
		return 0, ErrRosterSourceRequired
	}

	entries, err := src.ListEntries(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list roster entries: %w", err)
	}

	added, err := func() (int, error) {
		e.mu.Lock()
		defer e.mu.Unlock()

		if err := e.checkAtRest(); err != nil {
			return 0, err
		}

		before := e.board.Len()
		errs := e.board.Load(entries)
		added := e.board.Len() - before
		e.metrics.RecordRosterSize(e.board.Len())
		e.logger.Info("roster loaded", "added", added, "skipped", len(errs), "roster", e.board.Len())
		e.transition(e.restingPhase(), &e.pending)

		return added, errors.Join(errs...)
	}()

	e.dispatch()

	return added, err
}

// Subscribe returns a channel receiving every completed assignment.
//
// The channel holds Config.EventBufferSize events. Events that do not fit are
// dropped for that subscriber and counted by the metrics collector.
//
// Returns:
//   - <-chan AssignmentEvent: Event channel, closed on unsubscribe or Close
//   - func(): Unsubscribe function
func (e *Engine) Subscribe() (<-chan AssignmentEvent, func()) {
	return e.events.Subscribe()
}

// SubscribePhases returns a channel receiving every phase the engine enters.
//
// The current phase is delivered immediately.
func (e *Engine) SubscribePhases() (<-chan Phase, func()) {
	return e.phases.Subscribe()
}

// Close stops the engine.
//
// Any in-flight spin or pending reveal is dropped, subscriber channels are
// closed and the hook context is cancelled. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.cancelInFlight()
	e.mu.Unlock()

	e.cancel()
	e.events.Close()
	e.phases.Close()
	e.logger.Info("engine closed")

	return nil
}

// Groups returns a copy of the groups.
func (e *Engine) Groups() Partition {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.board.Groups().Clone()
}

// Roster returns a copy of the entries still on the wheel.
func (e *Engine) Roster() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	return cloneEntries(e.board.Roster())
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phases.Phase()
}

// HasSpun reports whether the current game has a frozen assignment, that is,
// whether a spin was requested since the last reset or group count change.
func (e *Engine) HasSpun() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cache.Valid()
}

// Rotation returns the wheel rotation in radians.
//
// Rotation accumulates across spins and is never reset.
func (e *Engine) Rotation() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.rotation
}

// GroupCount returns the number of groups.
func (e *Engine) GroupCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.board.GroupCount()
}

// GameID returns the ID of the current game.
//
// A new ID is issued when the engine is created and whenever ResetGame or
// SetGroupCount starts a new game. Every event of a game carries its ID,
// including manual placements made before the first spin.
func (e *Engine) GameID() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.gameID
}

// FrozenPartition returns a copy of the assignment computed at the first spin
// of the current game, or nil before it.
func (e *Engine) FrozenPartition() Partition {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cache.Partition()
}

// Snapshot returns a consistent copy of the engine's observable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		GameID:     e.gameID,
		Phase:      e.phases.Phase(),
		Rotation:   e.rotation,
		GroupCount: e.board.GroupCount(),
		HasSpun:    e.cache.Valid(),
		Roster:     cloneEntries(e.board.Roster()),
		Groups:     e.board.Groups().Clone(),
	}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cfg
}

// freezeAssignment computes the partition on the first spin of a game. On
// later spins it only checks the roster against what was partitioned.
func (e *Engine) freezeAssignment(n *notifications) error {
	roster := e.board.Roster()
	groupCount := e.board.GroupCount()

	var elapsed time.Duration
	_, built, err := e.cache.Get(roster, func(r []Entry) (Partition, error) {
		start := time.Now()
		p, err := e.partitioner.Partition(r, groupCount)
		elapsed = time.Since(start)

		return p, err
	})
	if err != nil {
		e.logger.Error("failed to compute assignment", "error", err)
		return err
	}

	if !built {
		if e.cache.Drifted(roster) {
			e.metrics.RecordRosterDrift()
			e.logger.Warn("roster changed since assignment was computed",
				"gameId", e.gameID,
				"roster", len(roster),
			)
		}

		return nil
	}

	partition := e.cache.Partition()
	e.metrics.RecordPartitionBuilt(len(roster), partition.Spread(), elapsed)
	e.logger.Info("assignment computed",
		"gameId", e.gameID,
		"entries", len(roster),
		"groups", groupCount,
		"spread", partition.Spread(),
	)

	gameID := e.gameID
	n.add(func() {
		if err := e.hooks.OnPartitionBuilt(e.ctx, gameID, partition); err != nil {
			e.logger.Error("OnPartitionBuilt hook failed", "error", err)
		}
	})

	return nil
}

// settle resolves a finished spin.
func (e *Engine) settle(n *notifications) {
	roster := e.board.Roster()
	selected := roster[e.wheel.Selected()]
	e.metrics.RecordSpinSettled(e.clock.Now().Sub(e.spunAt))
	e.logger.Debug("spin settled", "gameId", e.gameID, "selected", selected.Name, "rotation", e.rotation)
	e.wheel = nil

	switch len(roster) {
	case 1:
		e.reveal = &pendingReveal{entry: selected, remaining: e.cfg.FinalRevealDelay}
		e.transition(PhaseSettling, n)
	case 2:
		e.assignSelected(selected, n)
		e.reveal = &pendingReveal{entry: e.board.Roster()[0], remaining: e.cfg.PairRevealDelay}
		e.transition(PhaseRevealingLast, n)
	default:
		e.assignSelected(selected, n)
		e.transition(PhaseIdle, n)
	}
}

// completeReveal assigns the entry held back by the final-stage delay and ends the game.
func (e *Engine) completeReveal(n *notifications) {
	entry := e.reveal.entry
	e.reveal = nil
	e.assignSelected(entry, n)
	e.board.ClearRoster()
	e.transition(PhaseEmpty, n)
}

// assignSelected moves entry from the roster into its precomputed group, or
// into the lightest live group when the frozen assignment does not know it.
func (e *Engine) assignSelected(entry Entry, n *notifications) {
	res := assignment.Resolve(e.cache.Index(), e.board.Groups(), entry)
	e.board.Take(entry.Name)
	e.board.Place(entry, res.GroupIndex)

	path := types.AssignmentPathPrecomputed
	if res.Fallback {
		path = types.AssignmentPathFallback
		e.logger.Warn("fallback assignment",
			"gameId", e.gameID,
			"entry", entry.Name,
			"group", res.GroupIndex,
		)
		n.add(func() {
			if err := e.hooks.OnFallback(e.ctx, entry, res.GroupIndex); err != nil {
				e.logger.Error("OnFallback hook failed", "error", err)
			}
		})
	} else {
		e.cache.Consume(entry)
	}

	e.recordAssignment(AssignmentEvent{
		GameID:     e.gameID,
		Entry:      entry,
		GroupIndex: res.GroupIndex,
		Fallback:   res.Fallback,
		Remaining:  e.board.Len(),
	}, path, n)
}

// recordAssignment logs and meters an assignment and queues its notifications.
func (e *Engine) recordAssignment(ev AssignmentEvent, path string, n *notifications) {
	e.metrics.RecordAssignment(path)
	e.metrics.RecordRosterSize(e.board.Len())
	e.logger.Info("entry assigned",
		"gameId", ev.GameID,
		"entry", ev.Entry.Name,
		"score", ev.Entry.Score,
		"group", ev.GroupIndex,
		"path", path,
		"remaining", ev.Remaining,
	)

	n.add(func() {
		e.events.Publish(ev)
		if err := e.hooks.OnAssignment(e.ctx, ev); err != nil {
			e.logger.Error("OnAssignment hook failed", "error", err)
		}
	})
}

// transition changes phase and queues the phase hook.
func (e *Engine) transition(to Phase, n *notifications) {
	from, changed := e.phases.Transition(to)
	if !changed {
		return
	}

	n.add(func() {
		if err := e.hooks.OnPhaseChanged(e.ctx, from, to); err != nil {
			e.logger.Error("OnPhaseChanged hook failed", "error", err)
		}
	})
}

// restingPhase is the phase for an engine with nothing in flight.
func (e *Engine) restingPhase() Phase {
	if e.board.Len() == 0 {
		return PhaseEmpty
	}

	return PhaseIdle
}

func (e *Engine) checkAtRest() error {
	if e.closed {
		return ErrClosed
	}
	if e.phases.Phase().Busy() {
		return ErrSpinInProgress
	}

	return nil
}

// cancelInFlight drops any running spin or pending reveal. The wheel keeps
// whatever rotation it had reached.
func (e *Engine) cancelInFlight() {
	if e.wheel != nil || e.reveal != nil {
		e.logger.Debug("cancelling in-flight spin", "phase", e.phases.Phase())
	}
	e.wheel = nil
	e.reveal = nil
}

func (e *Engine) invalidate(reason string) {
	if e.cache.Valid() {
		e.logger.Debug("assignment discarded", "gameId", e.gameID, "reason", reason)
	}
	e.cache.Invalidate()
	e.gameID = uuid.NewString()
}

// dispatch drains the notification queue. It must be called without holding
// e.mu. Only one caller drains at a time; notifications queued meanwhile, by
// other goroutines or by hooks calling back into the engine, are picked up by
// the active drainer in queue order.
func (e *Engine) dispatch() {
	e.mu.Lock()
	if e.dispatching {
		e.mu.Unlock()
		return
	}
	e.dispatching = true

	for len(e.pending) > 0 {
		batch := e.pending
		e.pending = nil
		e.mu.Unlock()

		for _, fn := range batch {
			fn()
		}

		e.mu.Lock()
	}

	e.dispatching = false
	e.mu.Unlock()
}

func (n *notifications) add(fn func()) {
	*n = append(*n, fn)
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	return out
}

// frandSource draws spin turns from a fast userspace CSPRNG.
type frandSource struct{}

func (frandSource) Float64() float64 { return frand.Float64() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
