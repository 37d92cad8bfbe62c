// Package testing provides test utilities for the spinpick library.
//
// This package offers helpers for setting up test environments, particularly
// embedded NATS servers for exercising event sinks. It follows Go's convention
// of providing testing utilities in a dedicated package (similar to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single NATS server with JetStream
//   - CreateJetStreamStream: In-memory stream for captured events
//
// Example usage:
//
//	import (
//	    "testing"
//	    spintest "github.com/arloliu/spinpick/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    _, nc := spintest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	}
package testing
