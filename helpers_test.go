package spinpick

import (
	"sync"
	"testing"
	"time"

	"github.com/arloliu/spinpick/internal/logging"
	"github.com/arloliu/spinpick/internal/spin"
	"github.com/stretchr/testify/require"
)

// scriptedRandom returns queued values, then 0.5 once the queue is empty.
type scriptedRandom struct {
	mu     sync.Mutex
	values []float64
}

func (s *scriptedRandom) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) == 0 {
		return 0.5
	}
	v := s.values[0]
	s.values = s.values[1:]

	return v
}

func (s *scriptedRandom) push(v float64) {
	s.mu.Lock()
	s.values = append(s.values, v)
	s.mu.Unlock()
}

type harness struct {
	t      *testing.T
	engine *Engine
	random *scriptedRandom
	logger *logging.TestLogger
}

func newHarness(t *testing.T, groupCount int, opts ...Option) *harness {
	t.Helper()

	cfg := TestConfig()
	cfg.GroupCount = groupCount
	random := &scriptedRandom{}
	logger := logging.NewTest(t)

	opts = append([]Option{WithRandomSource(random), WithLogger(logger)}, opts...)
	engine, err := NewEngine(&cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	return &harness{t: t, engine: engine, random: random, logger: logger}
}

func (h *harness) add(entries ...Entry) {
	h.t.Helper()
	for _, e := range entries {
		_, err := h.engine.AddEntry(e.Name, e.Score)
		require.NoError(h.t, err)
	}
}

// aim queues a random value that makes the next spin stop on the roster entry
// named name, given the engine's current rotation and default turn bounds.
func (h *harness) aim(name string) {
	h.t.Helper()

	roster := h.engine.Roster()
	idx := -1
	for i, e := range roster {
		if e.Name == name {
			idx = i
		}
	}
	require.GreaterOrEqual(h.t, idx, 0, "entry %q not on roster", name)

	n := len(roster)
	segment := spin.FullTurn / float64(n)
	want := (float64(n-1-idx) + 0.5) * segment
	frac := spin.Normalize(want-h.engine.Rotation()) / spin.FullTurn
	// turns = MinTurns + r*(MaxTurns-MinTurns) = 5 + 5r
	h.random.push(frac / 5)
}

// spinTo spins the wheel so it settles on name, stepping frame by frame.
func (h *harness) spinTo(name string) {
	h.t.Helper()

	h.aim(name)
	require.NoError(h.t, h.engine.RequestSpin())
	require.Equal(h.t, PhaseSpinning, h.engine.Phase())
	h.step(h.engine.Config().SpinDuration)
}

// step advances engine time in 5ms frames.
func (h *harness) step(total time.Duration) {
	for total > 0 {
		d := min(total, 5*time.Millisecond)
		h.engine.Advance(d)
		total -= d
	}
}

// drain advances until the engine is at rest.
func (h *harness) drain() {
	h.t.Helper()
	for range 10000 {
		if !h.engine.Phase().Busy() {
			return
		}
		h.engine.Advance(5 * time.Millisecond)
	}
	h.t.Fatalf("engine did not come to rest, phase %s", h.engine.Phase())
}

func memberNames(g Group) []string {
	out := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		out = append(out, m.Name)
	}

	return out
}

func referenceEntries() []Entry {
	return []Entry{
		{Name: "A", Score: 5},
		{Name: "B", Score: 3},
		{Name: "C", Score: 3},
		{Name: "D", Score: 1},
	}
}
