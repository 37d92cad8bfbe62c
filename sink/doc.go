// Package sink forwards engine assignment events to external systems.
//
// NATS publishes each AssignmentEvent as JSON on a subject, either with core
// NATS publish or, when configured with a JetStream context, as a persisted
// stream message deduplicated per game and entry.
//
// Example:
//
//	events, unsubscribe := engine.Subscribe()
//	defer unsubscribe()
//
//	s := sink.NewNATS(nc, "spinpick.assignments", sink.WithJetStream(js))
//	go s.Run(ctx, events)
package sink
