// Package testutil provides shared test utilities and fixtures for integration tests.
//
// It holds roster generators, partition invariant assertions and helpers for
// waiting on engine phases.
//
// Note: For NATS server setup, use the github.com/arloliu/spinpick/testing package.
// This package is specifically for integration test scenarios and helper utilities.
package testutil
