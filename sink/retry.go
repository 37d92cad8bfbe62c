package sink

import (
	"errors"
	rand "math/rand/v2"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// RetryPolicy controls how Publish retries connectivity failures.
type RetryPolicy struct {
	// Attempts is the total number of publish attempts (>= 1).
	Attempts int
	// Base is the first retry delay.
	Base time.Duration
	// Multiplier grows the delay ceiling between attempts.
	Multiplier float64
	// Cap bounds every delay.
	Cap time.Duration
}

// DefaultRetryPolicy returns the retry policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:   3,
		Base:       50 * time.Millisecond,
		Multiplier: 2,
		Cap:        time.Second,
	}
}

// isConnectivityError reports whether err is worth retrying: timeouts,
// disconnections and missing stream responders.
func isConnectivityError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrNoServers) ||
		errors.Is(err, nats.ErrDisconnected) ||
		errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, nats.ErrConnectionReconnecting) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "i/o timeout")
}

// jitterBackoff computes the next delay with decorrelated jitter:
//
//	next = min(cap, base + rand(prev*multiplier - base))
//
// prev <= 0 starts from base; a multiplier below 1 means no growth.
func jitterBackoff(prev time.Duration, p RetryPolicy, rng *rand.Rand) time.Duration {
	base, mult, capDur := p.Base, p.Multiplier, p.Cap
	if base <= 0 {
		base = 50 * time.Millisecond
	}
	if mult < 1.0 {
		mult = 1.0
	}
	if capDur > 0 && capDur < base {
		return capDur
	}
	if prev <= 0 {
		return base
	}

	maxDuration := time.Duration(float64(prev)*mult) - base
	if maxDuration <= 0 {
		maxDuration = base
	}

	var jitter int64
	if rng != nil {
		jitter = rng.Int64N(int64(maxDuration))
	} else {
		jitter = rand.Int64N(int64(maxDuration)) //nolint:gosec // non-crypto backoff jitter
	}

	next := base + time.Duration(jitter)
	if capDur > 0 && next > capDur {
		return capDur
	}

	return next
}
