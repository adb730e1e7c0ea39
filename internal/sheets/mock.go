package sheets

import (
	"context"
	"sync"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
)

// MockWriter is a service.Reporter that records what it was asked to write.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, rows []service.ReportRow) error
	WriteCalls     []WriteCall
	LastRows       []service.ReportRow
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error error
	Rows  []service.ReportRow
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write implements service.Reporter.
func (m *MockWriter) Write(ctx context.Context, rows []service.ReportRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastRows = rows

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, rows)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Rows:  rows,
		Error: err,
	})

	return err
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount = 0
	m.WriteCalls = make([]WriteCall, 0)
	m.LastRows = nil
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to return err from every Write call.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(_ context.Context, _ []service.ReportRow) error {
		return err
	}
}
