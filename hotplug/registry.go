package hotplug

import (
	"sync"
	"sync/atomic"

	"github.com/ardnew/usbhotplug/pkg"
)

// nextHandle issues process-wide monotonically increasing filter handles.
// A handle is never reused, so a stale handle can at worst name a filter
// that no longer exists.
var nextHandle atomic.Int64

// Registry is an ordered collection of registered filters with a
// match-dispatch engine. The zero value is not usable; create one with
// [New] and release it with [Close].
//
// All methods are safe for concurrent use and for re-entrant use from
// within callbacks.
type Registry struct {
	backend Backend

	// mu is the only shared-mutation guard. It is never held across a
	// user callback invocation.
	mu      sync.Mutex
	filters []*filter // insertion order preserved
	waker   Waker
	closed  bool
}

// New creates a registry backed by the given device-discovery collaborator.
func New(backend Backend) *Registry {
	return &Registry{backend: backend}
}

// SetWaker attaches the cross-thread wakeup channel written by Deregister.
// Without a waker, reclamation of deregistered filters is deferred until
// the next dispatch pass.
func (r *Registry) SetWaker(w Waker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waker = w
}

// Count returns the number of live (not pending-removal) filters.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.filters {
		if !f.pendingRemoval {
			n++
		}
	}
	return n
}

// validField reports whether v is MatchAny or fits within max.
func validField(v, max int32) bool {
	return v == MatchAny || (v >= 0 && v <= max)
}

// reject logs a refused registration with its status classification and
// returns the sentinel unchanged.
func (r *Registry) reject(err error) error {
	pkg.LogWarn(pkg.ComponentRegistry, "registration rejected",
		"status", pkg.StatusOf(err).String())
	return err
}

// Register adds a filter and returns its handle.
//
// vendorID, productID, and deviceClass are each MatchAny or a value within
// the corresponding descriptor field width; events selects the transitions
// to deliver. With FlagEnumerate, every currently known device is delivered
// to the new filter as a synthetic DeviceArrived before Register returns;
// an enumeration failure rolls the registration back and is returned.
//
// Errors: pkg.ErrNotSupported when the backend lacks hotplug capability,
// pkg.ErrInvalidParameter for out-of-range fields or a nil callback,
// pkg.ErrNoMemory at capacity, pkg.ErrNotRunning after Close.
func (r *Registry) Register(vendorID, productID, deviceClass int32, events Event, flags Flag, cb Callback, userData any) (Handle, error) {
	if !r.backend.HasHotplugCapability() {
		return 0, r.reject(pkg.ErrNotSupported)
	}
	if !validField(vendorID, MaxVendorID) ||
		!validField(productID, MaxProductID) ||
		!validField(deviceClass, MaxClass) ||
		cb == nil {
		return 0, r.reject(pkg.ErrInvalidParameter)
	}

	f := &filter{
		vendorID:    vendorID,
		productID:   productID,
		deviceClass: deviceClass,
		events:      events,
		callback:    cb,
		userData:    userData,
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return 0, r.reject(pkg.ErrNotRunning)
	}
	if len(r.filters) >= MaxFilters {
		r.mu.Unlock()
		return 0, r.reject(pkg.ErrNoMemory)
	}
	f.handle = Handle(nextHandle.Add(1))
	r.filters = append(r.filters, f)
	r.mu.Unlock()

	pkg.LogDebug(pkg.ComponentRegistry, "filter registered",
		"handle", int64(f.handle),
		"vendor", vendorID,
		"product", productID,
		"class", deviceClass,
		"events", events.String())

	if flags&FlagEnumerate != 0 {
		devs, err := r.backend.Devices()
		if err != nil {
			pkg.LogWarn(pkg.ComponentRegistry, "enumeration failed, rolling back registration",
				"handle", int64(f.handle),
				"error", err)
			r.Deregister(f.handle)
			return 0, err
		}
		for _, dev := range devs {
			r.deliver(f, dev, DeviceArrived)
		}
	}

	return f.handle, nil
}

// Deregister marks the filter for removal and writes one wakeup token.
//
// Removal is asynchronous by design: the entry is unlinked and reclaimed by
// the next dispatch pass (or sweep), never by this call. The callback may
// therefore still fire until one full pass completes, but no new matching
// event invokes it afterwards. Safe to call from within a callback.
func (r *Registry) Deregister(h Handle) {
	r.mu.Lock()
	for _, f := range r.filters {
		if f.handle == h {
			f.pendingRemoval = true
		}
	}
	w := r.waker
	r.mu.Unlock()

	pkg.LogDebug(pkg.ComponentRegistry, "filter deregistration requested",
		"handle", int64(h))

	if w != nil {
		w.Wake()
	}
}

// Close tears down the registry: every remaining filter receives a
// DeviceLeft notification for each of its associated devices, then all
// entries are discarded. Subsequent Register calls fail with
// pkg.ErrNotRunning; other operations become no-ops.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	filters := r.filters
	r.filters = nil
	r.mu.Unlock()

	for _, f := range filters {
		r.reclaim(f)
	}

	pkg.LogInfo(pkg.ComponentRegistry, "registry closed",
		"filters", len(filters))
}
