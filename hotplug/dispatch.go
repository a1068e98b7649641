package hotplug

import "github.com/ardnew/usbhotplug/pkg"

// Dispatch delivers a device transition to every matching filter, in
// registration order. It is the entry point the enumerator collaborator
// calls once per transition.
//
// Filters marked pending-removal are unlinked and reclaimed instead of
// matched. Callback invocations run with the registry lock released.
// Dispatch-time conditions (no match, unknown device, already-removed
// filter) are silent no-ops.
func (r *Registry) Dispatch(dev *Device, event Event) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	// Snapshot the walk order so concurrent unlinks cannot skip or repeat
	// entries. The snapshot holds no liveness claim: each entry is
	// re-checked under the lock before use.
	snapshot := make([]*filter, len(r.filters))
	copy(snapshot, r.filters)
	r.mu.Unlock()

	pkg.LogDebug(pkg.ComponentDispatch, "dispatching event",
		"event", event.String(),
		"device", dev.String(),
		"filters", len(snapshot))

	for _, f := range snapshot {
		r.deliver(f, dev, event)
	}
}

// Sweep is a no-op dispatch pass: it unlinks and reclaims pending-removal
// entries without matching any device. The wakeup channel consumer calls
// it so that deregistered filters are reclaimed in bounded time even when
// no device traffic occurs.
func (r *Registry) Sweep() {
	r.mu.Lock()
	var reclaimed []*filter
	kept := r.filters[:0]
	for _, f := range r.filters {
		if f.pendingRemoval {
			reclaimed = append(reclaimed, f)
		} else {
			kept = append(kept, f)
		}
	}
	r.filters = kept
	r.mu.Unlock()

	for _, f := range reclaimed {
		r.reclaim(f)
	}
}

// deliver runs the match-and-invoke step for a single filter.
//
// The lock ordering here is the core correctness property: association
// bookkeeping and the pending-removal check happen under the lock, the
// user callback runs with the lock released, and unlink-under-lock must
// complete before reclaim so that no other pass can still reach the entry.
func (r *Registry) deliver(f *filter, dev *Device, event Event) {
	r.mu.Lock()
	if r.closed {
		// Teardown won the race; Close owns all remaining notifications.
		r.mu.Unlock()
		return
	}
	if f.pendingRemoval {
		unlinked := r.unlink(f)
		r.mu.Unlock()
		if unlinked {
			r.reclaim(f)
		}
		return
	}

	fire := false
	switch event {
	case DeviceArrived:
		// Re-announcing an associated device is a no-op; the disconnect
		// path must fire at most once per successful connect. The
		// association is recorded whenever the fields match, so a filter
		// subscribed only to departures still learns which devices it
		// will owe a notification for.
		if f.matchesDevice(dev) && !f.connected(dev.ID) {
			f.connect(dev)
			fire = f.matches(dev, DeviceArrived)
		}
	case DeviceLeft:
		if f.connected(dev.ID) {
			f.disconnect(dev.ID)
			fire = f.matches(dev, DeviceLeft)
		}
	}
	r.mu.Unlock()

	if !fire {
		return
	}

	if !f.callback(r, dev, event, f.userData) {
		return
	}

	// Callback asked to detach: same two-phase removal as Deregister,
	// except this pass performs the unlink immediately.
	r.mu.Lock()
	f.pendingRemoval = true
	unlinked := r.unlink(f)
	r.mu.Unlock()
	if unlinked {
		r.reclaim(f)
	}
}

// unlink removes f from the registry. Caller must hold r.mu. Returns false
// if another pass (or Close) already removed it, in which case that pass
// owns reclamation.
func (r *Registry) unlink(f *filter) bool {
	for i, g := range r.filters {
		if g == f {
			r.filters = append(r.filters[:i], r.filters[i+1:]...)
			return true
		}
	}
	return false
}

// reclaim releases an unlinked filter: its disconnect path fires once for
// each remaining device association, then the entry is dropped. Called
// exactly once per filter, by the pass that unlinked it, strictly after
// the unlink is visible under the lock.
func (r *Registry) reclaim(f *filter) {
	r.mu.Lock()
	devs := f.devices
	f.devices = nil
	r.mu.Unlock()

	for _, dev := range devs {
		// Detach requests are meaningless here; the filter is already gone.
		f.callback(r, dev, DeviceLeft, f.userData)
	}

	pkg.LogDebug(pkg.ComponentDispatch, "filter reclaimed",
		"handle", int64(f.handle),
		"disconnects", len(devs))
}
