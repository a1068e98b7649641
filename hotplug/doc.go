// Package hotplug implements device arrival/departure notification for a
// USB host-access library.
//
// Client code registers interest in device transitions, filtered by vendor
// ID, product ID, and device class, and receives a callback when a matching
// event occurs. Device discovery itself is delegated to a [Backend]
// collaborator; this package owns only the callback registry and the
// match-dispatch engine, including its safe-removal protocol.
//
// # Architecture
//
//   - Registry holds registered filters in insertion order under one lock
//   - Dispatch walks the registry and invokes matching callbacks with the
//     lock released, so callbacks may re-enter the registry
//   - Deregister is two-phase: mark pending, then reclaim on the next
//     dispatch pass, with a cross-thread wakeup token in between
//   - Notifier is an optional event loop that serializes delivery and
//     turns wakeup tokens into prompt reclamation sweeps
//
// # Matching
//
// A filter fires when the event is in its mask and every non-wildcard
// field equals the device's corresponding descriptor field. All matching
// filters fire independently, in registration order. A filter that matched
// a device's arrival tracks that device as connected; its departure is
// routed only to filters holding such an association, at most once per
// prior connect.
//
// # Removal protocol
//
// Filters are unlinked under the lock, invoked without it, and released
// only after the unlink is visible, never while a callback invocation for
// the same entry could still be executing. Deregistration is therefore
// asynchronous: callers may not assume the callback has stopped firing the
// instant Deregister returns, only that no new matching event invokes it
// after one full dispatch pass completes.
//
// # Example
//
//	reg := hotplug.New(backend)
//	n := hotplug.NewNotifier(reg)
//	go n.Run(ctx)
//
//	h, err := reg.Register(0x1234, hotplug.MatchAny, hotplug.MatchAny,
//	    hotplug.DeviceArrived|hotplug.DeviceLeft, hotplug.FlagEnumerate,
//	    func(r *hotplug.Registry, dev *hotplug.Device, ev hotplug.Event, _ any) bool {
//	        log.Println(ev, dev)
//	        return false
//	    }, nil)
//
//	// ... later
//	reg.Deregister(h)
//	reg.Close()
package hotplug
