package logging

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/arloliu/spinpick/types"
)

// Record is a single captured log call.
type Record struct {
	Level         string
	Msg           string
	KeysAndValues []any
}

// Value returns the value logged for key, or nil if the key was not logged.
func (r Record) Value(key string) any {
	for i := 0; i+1 < len(r.KeysAndValues); i += 2 {
		if k, ok := r.KeysAndValues[i].(string); ok && k == key {
			return r.KeysAndValues[i+1]
		}
	}

	return nil
}

// TestLogger writes log calls through testing.TB and keeps them for assertions.
type TestLogger struct {
	tb testing.TB

	mu      sync.Mutex
	records []Record
}

var _ types.Logger = (*TestLogger)(nil)

// NewTest creates a logger bound to a test.
//
// Messages appear in the test output via t.Logf. Fatal fails the test.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    logger := logging.NewTest(t)
//	    ...
//	    require.NotEmpty(t, logger.Find("WARN", "fallback assignment"))
//	}
func NewTest(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

// Debug logs at debug level.
func (l *TestLogger) Debug(msg string, keysAndValues ...any) {
	l.log("DEBUG", msg, keysAndValues)
}

// Info logs at info level.
func (l *TestLogger) Info(msg string, keysAndValues ...any) {
	l.log("INFO", msg, keysAndValues)
}

// Warn logs at warn level.
func (l *TestLogger) Warn(msg string, keysAndValues ...any) {
	l.log("WARN", msg, keysAndValues)
}

// Error logs at error level.
func (l *TestLogger) Error(msg string, keysAndValues ...any) {
	l.log("ERROR", msg, keysAndValues)
}

// Fatal records the message and fails the test immediately.
func (l *TestLogger) Fatal(msg string, keysAndValues ...any) {
	l.record("FATAL", msg, keysAndValues)
	l.tb.Fatalf("FATAL: %s %s", msg, formatKeyValues(keysAndValues))
}

// Records returns a copy of everything logged so far.
func (l *TestLogger) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Record, len(l.records))
	copy(out, l.records)

	return out
}

// Find returns the records matching level and message.
func (l *TestLogger) Find(level, msg string) []Record {
	var out []Record
	for _, r := range l.Records() {
		if r.Level == level && r.Msg == msg {
			out = append(out, r)
		}
	}

	return out
}

func (l *TestLogger) log(level, msg string, keysAndValues []any) {
	l.record(level, msg, keysAndValues)
	l.tb.Logf("%s: %s %s", level, msg, formatKeyValues(keysAndValues))
}

func (l *TestLogger) record(level, msg string, keysAndValues []any) {
	kv := make([]any, len(keysAndValues))
	copy(kv, keysAndValues)

	l.mu.Lock()
	l.records = append(l.records, Record{Level: level, Msg: msg, KeysAndValues: kv})
	l.mu.Unlock()
}

func formatKeyValues(keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&b, "%v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&b, "%v=<missing>", keysAndValues[i])
		}
	}

	return b.String()
}
