// Package report records step parameters and outcomes for test reports.
package report

import (
	"fmt"
	"log/slog"
	"sync"
)

// Recorder receives label/value pairs after state-changing operations.
type Recorder interface {
	Record(label string, value any)
}

// Record forwards to r and swallows any panic it raises: a broken
// recorder never fails the operation being reported.
func Record(r Recorder, logger *slog.Logger, label string, value any) {
	if r == nil {
		return
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Warn("report recorder failed", "label", label, "panic", fmt.Sprint(p))
		}
	}()

	r.Record(label, value)
}

// LogRecorder writes every entry to a logger at info level.
type LogRecorder struct {
	logger *slog.Logger
}

func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

func (r *LogRecorder) Record(label string, value any) {
	r.logger.Info("step parameter", "label", label, "value", value)
}

// Entry is one recorded pair.
type Entry struct {
	Label string
	Value any
}

// Memory keeps entries in order; safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

func (m *Memory) Record(label string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{Label: label, Value: value})
}

func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...)
}
