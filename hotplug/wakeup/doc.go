// Package wakeup provides implementations of the hotplug wakeup channel.
//
// The registry's removal protocol writes one wakeup token per Deregister
// call; whoever owns the wakeup channel responds with a reclamation pass.
// Two transports are provided:
//
//   - Notify: an in-process coalescing channel token, for Go event loops
//   - Pipe: an OS-level byte pipe whose read end can be polled alongside
//     other file descriptors by an external event loop (Linux)
package wakeup
