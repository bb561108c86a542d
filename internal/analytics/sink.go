// Package analytics provides best-effort event emission for engine operations.
package analytics

import (
	"context"
	"log"
	"sync"
	"time"
)

// Event is one analytics record appended to the external event log
type Event struct {
	Category string         `json:"category"`
	Type     string         `json:"event_type"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// Sink receives engine events. Implementations must be fire-and-forget: Emit
// never blocks the caller on I/O and never propagates failures.
type Sink interface {
	Emit(category, eventType string, payload map[string]any)
}

// NopSink discards all events
type NopSink struct{}

// Emit discards the event
func (NopSink) Emit(string, string, map[string]any) {}

// EventWriter persists a single event record. Satisfied by db.DB.
type EventWriter interface {
	InsertEngineEvent(ctx context.Context, event Event) error
}

// emitTimeout bounds how long a background event write may run
const emitTimeout = 5 * time.Second

// AsyncSink writes events through an EventWriter on a detached goroutine so
// the primary operation is never delayed. Write failures are logged and
// swallowed.
type AsyncSink struct {
	writer EventWriter
	wg     sync.WaitGroup
}

// NewAsyncSink creates a sink that persists events via the given writer
func NewAsyncSink(writer EventWriter) *AsyncSink {
	return &AsyncSink{writer: writer}
}

// Emit schedules the event write in the background and returns immediately
func (s *AsyncSink) Emit(category, eventType string, payload map[string]any) {
	event := Event{Category: category, Type: eventType, Payload: payload}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		// Detached from the request context: the event must outlive the
		// operation that produced it.
		ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()

		if err := s.writer.InsertEngineEvent(ctx, event); err != nil {
			log.Printf("analytics: failed to record %s/%s event: %v", category, eventType, err)
		}
	}()
}

// Flush waits for all in-flight event writes to finish. Intended for shutdown
// and tests.
func (s *AsyncSink) Flush() {
	s.wg.Wait()
}
