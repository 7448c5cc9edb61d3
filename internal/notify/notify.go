// Package notify tells interested parties that site content changed.
package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

// Actions carried by an Event.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event describes one successful write.
type Event struct {
	Resource  string    `json:"resource"`
	Action    string    `json:"action"`
	ID        uint      `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink delivers events somewhere.
type Sink interface {
	Send(ctx context.Context, ev Event) error
}

// Dispatcher fans events out to its sinks in the background. Delivery is
// best effort: failures are logged and never reach the request.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher returns a dispatcher over sinks. With no sinks Publish is a
// no-op.
func NewDispatcher(timeout time.Duration, sinks ...Sink) *Dispatcher {
	return &Dispatcher{sinks: sinks, timeout: timeout}
}

// Publish delivers ev to every sink without blocking the caller.
func (d *Dispatcher) Publish(ev Event) {
	if d == nil || len(d.sinks) == 0 {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	for _, s := range d.sinks {
		d.wg.Add(1)
		go func(s Sink) {
			defer d.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			defer cancel()
			if err := s.Send(ctx, ev); err != nil {
				log.Printf("notify %s %s: %v", ev.Resource, ev.Action, err)
			}
		}(s)
	}
}

// Wait blocks until every in-flight delivery has finished.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
