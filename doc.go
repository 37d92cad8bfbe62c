// Package spinpick provides a wheel-spin grouping engine that splits a scored
// roster into groups with near-equal total scores.
//
// The wheel looks random, but group membership is decided up front: on the
// first spin of a game the roster is partitioned with a greedy
// longest-processing-time algorithm, and every settled spin then moves the
// selected entry into the group it was given. Only the reveal order is random.
//
// # Quick Start
//
//	cfg := spinpick.DefaultConfig()
//	cfg.GroupCount = 2
//
//	engine, err := spinpick.NewEngine(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	engine.AddEntry("Alice", 5)
//	engine.AddEntry("Bob", 3)
//	engine.AddEntry("Carol", 3)
//	engine.AddEntry("Dave", 1)
//
//	runner := spinpick.NewRunner(engine)
//	runner.Start(ctx)
//	defer runner.Stop()
//
//	engine.RequestSpin()
//
// # Architecture
//
// The engine moves through phases:
//
//	Empty → Idle → Spinning → Idle ... → RevealingLast → Empty
//
// A spin over two entries places the selected one and holds the other back for
// PairRevealDelay (RevealingLast). A spin over a single entry holds it for
// FinalRevealDelay (Settling). Time only moves through Engine.Advance, which
// the Runner calls from a ticker and tests call with fixed deltas.
//
// Entries added after the first spin are not in the frozen assignment; when
// spun they fall back to the group with the lowest total at that moment.
//
// # Advanced Usage
//
//	hooks := &spinpick.Hooks{
//	    OnAssignment: func(ctx context.Context, ev spinpick.AssignmentEvent) error {
//	        fmt.Printf("%s -> group %d\n", ev.Entry.Name, ev.GroupIndex+1)
//	        return nil
//	    },
//	}
//
//	engine, err := spinpick.NewEngine(&cfg,
//	    spinpick.WithPartitioner(strategy.NewRoundRobin()),
//	    spinpick.WithHooks(hooks),
//	    spinpick.WithMetrics(spinpick.NewPrometheusMetrics(prometheus.DefaultRegisterer, "spinpick")),
//	)
//
// See cmd/spinpick and the examples/ directory for complete programs.
package spinpick
