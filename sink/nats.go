package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/arloliu/spinpick/internal/logging"
	"github.com/arloliu/spinpick/types"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Message headers set on every published event.
const (
	HeaderGameID = "Spinpick-Game"
	HeaderGroup  = "Spinpick-Group"
)

// ErrSubjectRequired is returned by Publish when the sink has no subject.
var ErrSubjectRequired = errors.New("subject is required")

// NATS publishes assignment events to a NATS subject.
type NATS struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
	retry   RetryPolicy
	logger  types.Logger
	rng     *rand.Rand
}

// Option configures a NATS sink.
type Option func(*NATS)

// WithJetStream publishes through JetStream instead of core NATS.
//
// A stream must capture the sink subject. Each message carries a Nats-Msg-Id
// built from the game ID and entry name, so redelivered events are dropped by
// the stream's duplicate window.
func WithJetStream(js jetstream.JetStream) Option {
	return func(s *NATS) {
		s.js = js
	}
}

// WithRetry sets the retry policy for connectivity failures.
//
// Attempts below 1 are treated as 1 (no retry).
func WithRetry(policy RetryPolicy) Option {
	return func(s *NATS) {
		s.retry = policy
	}
}

// WithLogger sets the sink logger.
func WithLogger(logger types.Logger) Option {
	return func(s *NATS) {
		s.logger = logger
	}
}

// NewNATS creates a sink publishing to subject over conn.
//
// Parameters:
//   - conn: Connected NATS client
//   - subject: Subject every event is published on
//   - opts: Optional JetStream context and logger
//
// Returns:
//   - *NATS: Sink ready to publish
func NewNATS(conn *nats.Conn, subject string, opts ...Option) *NATS {
	s := &NATS{
		conn:    conn,
		subject: subject,
		retry:   DefaultRetryPolicy(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Publish sends one event.
//
// Connectivity failures (timeouts, disconnects, no stream responders) are
// retried with jittered backoff according to the retry policy.
//
// Parameters:
//   - ctx: Context bounding the JetStream acknowledgement wait
//   - ev: Event to publish
//
// Returns:
//   - error: Encoding or publish error
func (s *NATS) Publish(ctx context.Context, ev types.AssignmentEvent) error {
	if s.subject == "" {
		return ErrSubjectRequired
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode assignment event: %w", err)
	}

	attempts := max(s.retry.Attempts, 1)
	var delay time.Duration
	for attempt := 1; ; attempt++ {
		err = s.publishOnce(ctx, ev, data)
		if err == nil || attempt >= attempts || !isConnectivityError(err) {
			return err
		}

		delay = jitterBackoff(delay, s.retry, s.rng)
		s.logger.Warn("retrying assignment event publish",
			"entry", ev.Entry.Name,
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w (last error: %w)", ctx.Err(), err)
		case <-timer.C:
		}
	}
}

func (s *NATS) publishOnce(ctx context.Context, ev types.AssignmentEvent, data []byte) error {
	msg := nats.NewMsg(s.subject)
	msg.Data = data
	msg.Header.Set(HeaderGameID, ev.GameID)
	msg.Header.Set(HeaderGroup, strconv.Itoa(ev.GroupIndex))

	if s.js == nil {
		if err := s.conn.PublishMsg(msg); err != nil {
			return fmt.Errorf("failed to publish assignment event: %w", err)
		}

		return nil
	}

	ack, err := s.js.PublishMsg(ctx, msg, jetstream.WithMsgID(messageID(ev)))
	if err != nil {
		return fmt.Errorf("failed to publish assignment event to stream: %w", err)
	}
	if ack.Duplicate {
		s.logger.Debug("duplicate assignment event", "entry", ev.Entry.Name, "stream", ack.Stream)
	}

	return nil
}

// Run publishes events from ch until ch is closed or ctx is cancelled.
//
// Publish failures are logged and do not stop the loop.
//
// Returns:
//   - error: ctx.Err() if cancelled, nil when ch is closed
func (s *NATS) Run(ctx context.Context, ch <-chan types.AssignmentEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				s.logger.Debug("event channel closed, sink stopping", "subject", s.subject)
				return nil
			}
			if err := s.Publish(ctx, ev); err != nil {
				s.logger.Error("failed to forward assignment event",
					"entry", ev.Entry.Name,
					"subject", s.subject,
					"error", err,
				)
			}
		}
	}
}

// Start runs Run on a new goroutine.
//
// The returned wait function blocks until Run returns and yields its error.
// Close ch (for example by unsubscribing from the engine) before waiting so
// that buffered events are forwarded and the loop can end.
//
// Example:
//
//	events, unsubscribe := engine.Subscribe()
//	wait := s.Start(ctx, events)
//	// ... play ...
//	unsubscribe()
//	if err := wait(); err != nil { ... }
//	nc.Drain()
func (s *NATS) Start(ctx context.Context, ch <-chan types.AssignmentEvent) func() error {
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, ch)
	}()

	var once sync.Once
	var err error

	return func() error {
		once.Do(func() { err = <-done })
		return err
	}
}

func messageID(ev types.AssignmentEvent) string {
	return ev.GameID + ":" + ev.Entry.Name
}
