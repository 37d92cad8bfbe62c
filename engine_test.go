package spinpick

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/arloliu/spinpick/internal/spin"
	"github.com/arloliu/spinpick/strategy"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	t.Run("rejects nil config", func(t *testing.T) {
		_, err := NewEngine(nil)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.GroupCount = 1

		_, err := NewEngine(&cfg)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("applies defaults and starts empty", func(t *testing.T) {
		cfg := Config{}
		engine, err := NewEngine(&cfg)
		require.NoError(t, err)
		defer engine.Close()

		require.Equal(t, DefaultConfig(), cfg, "config is completed in place")
		require.Equal(t, PhaseEmpty, engine.Phase())
		require.Equal(t, 2, engine.GroupCount())
		require.False(t, engine.HasSpun())
		require.Empty(t, engine.Roster())
		require.Len(t, engine.Groups(), 2)
		require.NotEmpty(t, engine.GameID())
		require.Nil(t, engine.FrozenPartition())
	})
}

func TestEngine_WithSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg := TestConfig()
	engine, err := NewEngine(&cfg, WithLogger(logger))
	require.NoError(t, err)
	defer engine.Close()

	_, err = engine.AddEntry("Ann", 3)
	require.NoError(t, err)
	require.NoError(t, engine.RequestSpin())

	require.Contains(t, buf.String(), `"msg":"assignment computed"`)
	require.Contains(t, buf.String(), `"gameId":"`+engine.GameID()+`"`)
}

func TestEngine_RequestSpin(t *testing.T) {
	t.Run("empty roster is a no-op", func(t *testing.T) {
		h := newHarness(t, 2)

		err := h.engine.RequestSpin()

		require.ErrorIs(t, err, ErrEmptyRoster)
		require.Equal(t, PhaseEmpty, h.engine.Phase())
		require.False(t, h.engine.HasSpun())
	})

	t.Run("second request while spinning is a no-op", func(t *testing.T) {
		h := newHarness(t, 2)
		h.add(referenceEntries()...)

		require.NoError(t, h.engine.RequestSpin())
		require.ErrorIs(t, h.engine.RequestSpin(), ErrSpinInProgress)
		h.drain()

		require.Equal(t, 1, h.engine.Groups().EntryCount(), "exactly one group mutation")
		require.Len(t, h.engine.Roster(), 3)
		require.Equal(t, PhaseIdle, h.engine.Phase())
	})

	t.Run("first spin freezes the assignment", func(t *testing.T) {
		h := newHarness(t, 2)
		h.add(referenceEntries()...)

		require.NoError(t, h.engine.RequestSpin())

		require.True(t, h.engine.HasSpun())
		require.NotEmpty(t, h.engine.GameID())
		frozen := h.engine.FrozenPartition()
		require.Equal(t, []string{"A", "D"}, memberNames(frozen[0]))
		require.Equal(t, []string{"B", "C"}, memberNames(frozen[1]))
		require.Zero(t, h.engine.Groups().EntryCount(), "nothing is placed before the spin settles")
	})

	t.Run("rotation accumulates across spins", func(t *testing.T) {
		h := newHarness(t, 2)
		h.add(referenceEntries()...)

		h.spinTo("B")
		first := h.engine.Rotation()
		require.GreaterOrEqual(t, first, 5*spin.FullTurn)

		h.spinTo("C")
		second := h.engine.Rotation()
		require.GreaterOrEqual(t, second-first, 5*spin.FullTurn-1e-9)
		require.Less(t, second-first, 10*spin.FullTurn)
	})

	t.Run("rotation eases toward the target", func(t *testing.T) {
		h := newHarness(t, 2)
		h.add(referenceEntries()...)
		h.random.push(0)

		require.NoError(t, h.engine.RequestSpin())
		h.engine.Advance(50 * time.Millisecond) // halfway through a 100ms spin

		require.InDelta(t, 5*spin.FullTurn*0.875, h.engine.Rotation(), 1e-9)
		require.Equal(t, PhaseSpinning, h.engine.Phase())
	})
}

func TestEngine_ReferenceGame(t *testing.T) {
	orders := [][]string{
		{"A", "B", "C", "D"},
		{"D", "C", "B", "A"},
		{"B", "D", "A", "C"},
		{"C", "A", "D", "B"},
	}

	for _, order := range orders {
		t.Run("reveal order "+order[0]+order[1]+order[2]+order[3], func(t *testing.T) {
			h := newHarness(t, 2)
			h.add(referenceEntries()...)

			h.spinTo(order[0])
			require.Equal(t, PhaseIdle, h.engine.Phase())
			h.spinTo(order[1])
			require.Equal(t, PhaseIdle, h.engine.Phase())
			h.spinTo(order[2])
			require.Equal(t, PhaseRevealingLast, h.engine.Phase())
			require.Equal(t, []string{order[3]}, memberNames(Group{Members: h.engine.Roster()}))
			h.drain()

			groups := h.engine.Groups()
			require.ElementsMatch(t, []string{"A", "D"}, memberNames(groups[0]))
			require.ElementsMatch(t, []string{"B", "C"}, memberNames(groups[1]))
			require.Equal(t, 6, groups[0].TotalScore)
			require.Equal(t, 6, groups[1].TotalScore)
			require.Empty(t, h.engine.Roster())
			require.Equal(t, PhaseEmpty, h.engine.Phase())
			require.Empty(t, h.logger.Find("WARN", "fallback assignment"))
		})
	}
}

func TestEngine_SetGroupCount(t *testing.T) {
	t.Run("rejects counts below two without changing state", func(t *testing.T) {
		h := newHarness(t, 3)
		h.add(referenceEntries()...)
		h.spinTo("A")

		err := h.engine.SetGroupCount(1)

		require.ErrorIs(t, err, ErrInvalidGroupCount)
		require.Equal(t, 3, h.engine.GroupCount())
		require.Equal(t, 1, h.engine.Groups().EntryCount())
		require.True(t, h.engine.HasSpun())
	})

	t.Run("mid-game change resets groups and recomputes from the live roster", func(t *testing.T) {
		h := newHarness(t, 2)
		h.add(referenceEntries()...)
		h.spinTo("A")
		firstGame := h.engine.GameID()

		require.NoError(t, h.engine.SetGroupCount(3))

		require.Equal(t, 3, h.engine.GroupCount())
		require.Len(t, h.engine.Groups(), 3)
		require.Zero(t, h.engine.Groups().EntryCount())
		require.False(t, h.engine.HasSpun())
		secondGame := h.engine.GameID()
		require.NotEmpty(t, secondGame)
		require.NotEqual(t, firstGame, secondGame)
		require.Len(t, h.engine.Roster(), 3, "placed entries are not returned to the roster")

		h.spinTo("B")

		frozen := h.engine.FrozenPartition()
		require.Len(t, frozen, 3)
		require.Equal(t, 3, frozen.EntryCount(), "fresh partition covers only the live roster")
		require.Equal(t, secondGame, h.engine.GameID(), "first spin keeps the game ID")
	})

	t.Run("cancels an in-flight spin", func(t *testing.T) {
		h := newHarness(t, 2)
		h.add(referenceEntries()...)
		require.NoError(t, h.engine.RequestSpin())
		h.engine.Advance(30 * time.Millisecond)

		require.NoError(t, h.engine.SetGroupCount(2))
		h.step(time.Second)

		require.Equal(t, PhaseIdle, h.engine.Phase())
		require.Zero(t, h.engine.Groups().EntryCount())
		require.Len(t, h.engine.Roster(), 4)
	})

	t.Run("cancels a pending staged reveal", func(t *testing.T) {
		h := newHarness(t, 2)
		h.add(Entry{Name: "X", Score: 2}, Entry{Name: "Y", Score: 1})
		h.spinTo("X")
		require.Equal(t, PhaseRevealingLast, h.engine.Phase())

		require.NoError(t, h.engine.SetGroupCount(4))
		h.step(time.Second)

		require.Equal(t, PhaseIdle, h.engine.Phase())
		require.Equal(t, []Entry{{Name: "Y", Score: 1}}, h.engine.Roster())
		require.Zero(t, h.engine.Groups().EntryCount())
	})
}

func TestEngine_ResetGame(t *testing.T) {
	h := newHarness(t, 3)
	h.add(referenceEntries()...)
	h.spinTo("C")

	require.NoError(t, h.engine.ResetGame())

	require.Equal(t, PhaseEmpty, h.engine.Phase())
	require.Empty(t, h.engine.Roster())
	require.Len(t, h.engine.Groups(), 3)
	require.Zero(t, h.engine.Groups().EntryCount())
	require.False(t, h.engine.HasSpun())
	require.ErrorIs(t, h.engine.RequestSpin(), ErrEmptyRoster)

	// names from the previous game are free again
	_, err := h.engine.AddEntry("C", 1)
	require.NoError(t, err)
}

func TestEngine_GameID(t *testing.T) {
	t.Run("manual placements before the first spin carry the game ID", func(t *testing.T) {
		h := newHarness(t, 2)
		events, unsubscribe := h.engine.Subscribe()
		defer unsubscribe()

		var seen []string
		for range 2 {
			h.add(Entry{Name: "Ann", Score: 1})
			_, err := h.engine.AssignToGroup(0)
			require.NoError(t, err)

			ev := <-events
			require.Equal(t, "Ann", ev.Entry.Name)
			require.NotEmpty(t, ev.GameID)
			require.Equal(t, h.engine.GameID(), ev.GameID)
			seen = append(seen, ev.GameID)

			require.NoError(t, h.engine.ResetGame())
		}

		require.NotEqual(t, seen[0], seen[1])
	})

	t.Run("partition hook receives the current game ID", func(t *testing.T) {
		var got string
		hooks := &Hooks{
			OnPartitionBuilt: func(_ context.Context, gameID string, _ Partition) error {
				got = gameID
				return nil
			},
		}
		h := newHarness(t, 2, WithHooks(hooks))
		before := h.engine.GameID()
		h.add(referenceEntries()...)

		h.spinTo("A")

		require.Equal(t, before, got)
		require.Equal(t, before, h.engine.GameID())
	})
}

func TestEngine_Fallback(t *testing.T) {
	var mu sync.Mutex
	var fallbacks []string
	hooks := &Hooks{
		OnFallback: func(_ context.Context, e Entry, _ int) error {
			mu.Lock()
			fallbacks = append(fallbacks, e.Name)
			mu.Unlock()

			return nil
		},
	}
	h := newHarness(t, 2, WithHooks(hooks))
	h.add(referenceEntries()...)
	events, unsubscribe := h.engine.Subscribe()
	defer unsubscribe()

	h.spinTo("A") // G0 = {A}
	_, err := h.engine.AddEntry("Late", 2)
	require.NoError(t, err)

	h.spinTo("Late")

	first := <-events
	require.False(t, first.Fallback)
	late := <-events
	require.True(t, late.Fallback)
	require.Equal(t, "Late", late.Entry.Name)
	require.Equal(t, 1, late.GroupIndex, "lightest live group")
	require.Equal(t, []string{"Late"}, fallbacks)
	require.Len(t, h.logger.Find("WARN", "fallback assignment"), 1)
	require.Len(t, h.logger.Find("WARN", "roster changed since assignment was computed"), 1)

	// entries from the frozen assignment still land where they were indexed
	h.spinTo("D")
	require.ElementsMatch(t, []string{"A", "D"}, memberNames(h.engine.Groups()[0]))
}

func TestEngine_Hooks(t *testing.T) {
	var engine *Engine
	var mu sync.Mutex
	var log []string
	record := func(s string) {
		mu.Lock()
		log = append(log, s)
		mu.Unlock()
	}

	hooks := &Hooks{
		OnPhaseChanged: func(_ context.Context, from, to Phase) error {
			record(from.String() + ">" + to.String())
			return nil
		},
		OnAssignment: func(_ context.Context, ev AssignmentEvent) error {
			// hooks run outside the engine lock
			record(fmt.Sprintf("assign %s roster=%d", ev.Entry.Name, len(engine.Roster())))
			return errors.New("ignored")
		},
		OnPartitionBuilt: func(_ context.Context, gameID string, p Partition) error {
			record(fmt.Sprintf("partition %d", p.EntryCount()))
			require.NotEmpty(t, gameID)

			return nil
		},
	}
	h := newHarness(t, 2, WithHooks(hooks))
	engine = h.engine
	h.add(Entry{Name: "X", Score: 2}, Entry{Name: "Y", Score: 1})

	h.spinTo("Y")
	h.drain()

	require.Equal(t, []string{
		"Empty>Idle",
		"partition 2",
		"Idle>Spinning",
		"assign Y roster=1",
		"Spinning>RevealingLast",
		"assign X roster=0",
		"RevealingLast>Empty",
	}, log)
	require.Len(t, h.logger.Find("ERROR", "OnAssignment hook failed"), 2)
}

func TestEngine_NotificationOrder(t *testing.T) {
	var mu sync.Mutex
	var transitions [][2]Phase
	hooks := &Hooks{
		OnPhaseChanged: func(_ context.Context, from, to Phase) error {
			mu.Lock()
			transitions = append(transitions, [2]Phase{from, to})
			mu.Unlock()

			return nil
		},
	}
	h := newHarness(t, 3, WithHooks(hooks))

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
				h.engine.Advance(5 * time.Millisecond)
			}
		}
	}()

	for i := range 50 {
		_, err := h.engine.AddEntry(fmt.Sprintf("e%d", i), i%4+1)
		require.NoError(t, err)
		_ = h.engine.RequestSpin()
		_, _ = h.engine.AssignToGroup(0)
		if i%7 == 0 {
			_ = h.engine.SetGroupCount(2 + i%3)
		}
		if i%11 == 0 {
			_ = h.engine.ResetGame()
		}
	}
	close(stop)
	<-done

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, transitions)
	require.Equal(t, PhaseEmpty, transitions[0][0])
	for i := 1; i < len(transitions); i++ {
		require.Equal(t, transitions[i-1][1], transitions[i][0], "transition %d starts where %d ended", i, i-1)
	}
}

func TestEngine_Subscriptions(t *testing.T) {
	h := newHarness(t, 2)
	phases, unsubPhases := h.engine.SubscribePhases()
	defer unsubPhases()
	events, unsubEvents := h.engine.Subscribe()
	defer unsubEvents()

	require.Equal(t, PhaseEmpty, <-phases)

	h.add(Entry{Name: "solo", Score: 4})
	require.Equal(t, PhaseIdle, <-phases)

	h.spinTo("solo")
	require.Equal(t, PhaseSpinning, <-phases)
	require.Equal(t, PhaseSettling, <-phases)
	require.Equal(t, []Entry{{Name: "solo", Score: 4}}, h.engine.Roster(), "entry stays on the wheel while settling")

	h.step(19 * time.Millisecond)
	require.Equal(t, PhaseSettling, h.engine.Phase())
	h.step(time.Millisecond)
	require.Equal(t, PhaseEmpty, <-phases)
	require.Empty(t, h.engine.Roster())

	ev := <-events
	require.Equal(t, "solo", ev.Entry.Name)
	require.Equal(t, 0, ev.GroupIndex)
	require.Equal(t, 0, ev.Remaining)
	require.Equal(t, h.engine.GameID(), ev.GameID)
}

func TestEngine_Close(t *testing.T) {
	h := newHarness(t, 2)
	h.add(referenceEntries()...)
	events, _ := h.engine.Subscribe()
	require.NoError(t, h.engine.RequestSpin())

	require.NoError(t, h.engine.Close())
	require.NoError(t, h.engine.Close(), "close is idempotent")

	h.engine.Advance(time.Second)
	require.Zero(t, h.engine.Groups().EntryCount(), "no mutation after close")

	_, ok := <-events
	require.False(t, ok)
	require.ErrorIs(t, h.engine.RequestSpin(), ErrClosed)
	require.ErrorIs(t, h.engine.SetGroupCount(3), ErrClosed)
	require.ErrorIs(t, h.engine.ResetGame(), ErrClosed)
	_, err := h.engine.AddEntry("Z", 1)
	require.ErrorIs(t, err, ErrClosed)
}

func TestEngine_Partitioner(t *testing.T) {
	h := newHarness(t, 3, WithPartitioner(strategy.NewRoundRobin()))
	h.add(
		Entry{Name: "a", Score: 6}, Entry{Name: "b", Score: 5}, Entry{Name: "c", Score: 4},
		Entry{Name: "d", Score: 3}, Entry{Name: "e", Score: 2}, Entry{Name: "f", Score: 1},
	)

	require.NoError(t, h.engine.RequestSpin())

	frozen := h.engine.FrozenPartition()
	require.Equal(t, []string{"a", "f"}, memberNames(frozen[0]))
	require.Equal(t, []string{"b", "e"}, memberNames(frozen[1]))
	require.Equal(t, []string{"c", "d"}, memberNames(frozen[2]))
}

func TestEngine_Snapshot(t *testing.T) {
	h := newHarness(t, 2)
	h.add(referenceEntries()...)
	h.spinTo("A")

	snap := h.engine.Snapshot()

	require.Equal(t, h.engine.GameID(), snap.GameID)
	require.Equal(t, PhaseIdle, snap.Phase)
	require.True(t, snap.HasSpun)
	require.Equal(t, 2, snap.GroupCount)
	require.Len(t, snap.Roster, 3)
	require.Equal(t, []string{"A"}, memberNames(snap.Groups[0]))
	require.False(t, math.IsNaN(snap.Rotation))

	snap.Roster[0].Name = "mutated"
	require.NotEqual(t, "mutated", h.engine.Roster()[0].Name)
}
