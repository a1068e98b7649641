package hotplug

import (
	"context"
	"sync"

	"github.com/eapache/queue"

	"github.com/ardnew/usbhotplug/pkg"
)

// message pairs a device with the transition to deliver.
type message struct {
	dev   *Device
	event Event
}

// Notifier serializes hotplug delivery onto a single goroutine. Enumerator
// threads post transitions with [Notifier.Post]; the [Notifier.Run] loop
// drains them into [Registry.Dispatch].
//
// The notifier also implements [Waker]: constructing one attaches it to the
// registry, so each Deregister wakes the run loop, which responds with a
// reclamation sweep. This guarantees bounded-time reclamation without
// depending on unrelated device traffic.
type Notifier struct {
	reg *Registry

	mu   sync.Mutex
	msgs *queue.Queue

	// wake carries coalesced wakeup tokens. Coalescing is sound because
	// the run loop fully drains pending work per token.
	wake chan struct{}
}

// NewNotifier creates a notifier and attaches it to reg as its waker.
func NewNotifier(reg *Registry) *Notifier {
	n := &Notifier{
		reg:  reg,
		msgs: queue.New(),
		wake: make(chan struct{}, 1),
	}
	reg.SetWaker(n)
	return n
}

// Post enqueues a device transition for delivery by the run loop. It never
// blocks and is safe from any goroutine, including callbacks.
func (n *Notifier) Post(dev *Device, event Event) {
	n.mu.Lock()
	n.msgs.Add(message{dev: dev, event: event})
	n.mu.Unlock()
	n.Wake()
}

// Wake writes one wakeup token. Implements [Waker].
func (n *Notifier) Wake() {
	select {
	case n.wake <- struct{}{}:
	default:
	}
}

// Run delivers posted transitions and reclamation sweeps until ctx is
// cancelled. It returns the context's error.
func (n *Notifier) Run(ctx context.Context) error {
	pkg.LogInfo(pkg.ComponentNotify, "event loop started")
	for {
		select {
		case <-ctx.Done():
			pkg.LogInfo(pkg.ComponentNotify, "event loop stopped")
			return ctx.Err()
		case <-n.wake:
			if !n.drain() {
				// Bare token: a deregistration requested a sweep.
				n.reg.Sweep()
			}
		}
	}
}

// drain dispatches all queued messages, reporting whether any were present.
// A dispatch pass also sweeps pending-removal entries, so a non-empty drain
// subsumes the explicit sweep.
func (n *Notifier) drain() bool {
	delivered := false
	for {
		n.mu.Lock()
		if n.msgs.Length() == 0 {
			n.mu.Unlock()
			return delivered
		}
		m := n.msgs.Remove().(message)
		n.mu.Unlock()

		delivered = true
		n.reg.Dispatch(m.dev, m.event)
	}
}

// Pending returns the number of undelivered messages.
func (n *Notifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msgs.Length()
}
