// Package events contains the synchronous in-process event dispatch.
package events

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// EventName is the unique name of the event
type EventName string

// Event can be dispatched to 0 .. n registered listeners
type Event interface {
	Name() EventName
}

// EventListener handles a single event type
type EventListener interface {
	ForEvent() EventName
	Handle(ctx context.Context, ev Event) error
}

// Dispatcher fans events out to their listeners, listener failures
// never propagate to the dispatching call site.
type Dispatcher struct {
	log      *zap.Logger
	registry map[EventName][]EventListener
}

// NewDispatcher returns a new dispatcher instance
func NewDispatcher(log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		log:      log,
		registry: make(map[EventName][]EventListener),
	}
}

// Register adds listeners to the registry
func (d *Dispatcher) Register(listener ...EventListener) {
	for _, v := range listener {
		d.log.Debug("Registering event listener", zap.String("event", string(v.ForEvent())))
		d.registry[v.ForEvent()] = append(d.registry[v.ForEvent()], v)
	}
}

func (d *Dispatcher) executeEvent(ctx context.Context, el EventListener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("recovered from panicing event listener",
				zap.Any("recoverer", r),
				zap.String("event", string(ev.Name())),
				zap.String("event_listener", fmt.Sprintf("%T", el)))
		}
	}()
	if err := el.Handle(ctx, ev); err != nil {
		d.log.Error("Event listener returned error",
			zap.String("event_listener", fmt.Sprintf("%T", el)),
			zap.Error(err),
			zap.String("event", string(ev.Name())))
	}
}

// Dispatch runs every listener registered for the event in order
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) {
	listeners, ok := d.registry[event.Name()]
	if !ok {
		d.log.Info("No event listener for event", zap.String("event", string(event.Name())))
		return
	}
	for _, v := range listeners {
		d.executeEvent(ctx, v, event)
	}
}
