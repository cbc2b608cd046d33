// internal/dispatch/subscription.go
package dispatch

import (
	"sync/atomic"

	"github.com/inkwell-editor/inkwell/internal/event"
	"github.com/inkwell-editor/inkwell/internal/logger"
)

// ContextFunc reads the ambient focus state for one keystroke. Called
// fresh on every event; the result is never cached.
type ContextFunc func() Context

// Subscription is a live attachment of a dispatcher to the event bus.
// Stop detaches it.
type Subscription struct {
	active atomic.Bool
}

// Start attaches the dispatcher to the key event stream. Every key press
// is routed through the guard chain with a freshly read context; consumed
// events stop further handling on the bus.
func (d *Dispatcher) Start(events *event.Manager, contextFn ContextFunc) *Subscription {
	if events == nil {
		panic("dispatch: Start requires an event manager")
	}
	if contextFn == nil {
		panic("dispatch: Start requires a context function")
	}

	sub := &Subscription{}
	sub.active.Store(true)

	events.Subscribe(event.TypeKeyPressed, func(e event.Event) bool {
		if !sub.active.Load() {
			return false
		}
		data, ok := e.Data.(event.KeyPressedData)
		if !ok || data.KeyEvent == nil {
			return false
		}
		return d.HandleKey(data.KeyEvent, contextFn())
	})
	logger.Debugf("Dispatcher: subscribed to key events")
	return sub
}

// Stop detaches the subscription. The bus handler stays registered but
// inert, passing every event through.
func (s *Subscription) Stop() {
	s.active.Store(false)
}
