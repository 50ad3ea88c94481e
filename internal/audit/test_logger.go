package audit

import (
	"net/http"
	"sync"
)

// TestLogger keeps audit entries in memory, used by handler tests.
type TestLogger struct {
	mu      sync.Mutex
	entries []Entry
}

func NewTestLogger() *TestLogger {
	return &TestLogger{}
}

func (l *TestLogger) Log(r *http.Request, action string, details Details) {
	entry := NewEntry(r, action, details)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, *entry)
}

func (l *TestLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

func (l *TestLogger) Actions() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	actions := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		actions = append(actions, e.Action)
	}
	return actions
}
