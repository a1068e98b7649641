package hotplug

import (
	"sync"
	"testing"
	"time"
)

// =============================================================================
// Mock Collaborators for Testing
// =============================================================================

// mockBackend implements Backend for testing.
type mockBackend struct {
	mu      sync.Mutex
	capable bool
	devices []*Device
	devErr  error

	// devicesCalls counts Devices() invocations.
	devicesCalls int
}

func newMockBackend(devices ...*Device) *mockBackend {
	return &mockBackend{capable: true, devices: devices}
}

func (m *mockBackend) HasHotplugCapability() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capable
}

func (m *mockBackend) Devices() ([]*Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.devicesCalls++
	if m.devErr != nil {
		return nil, m.devErr
	}
	out := make([]*Device, len(m.devices))
	copy(out, m.devices)
	return out, nil
}

// mockWaker implements Waker and counts tokens.
type mockWaker struct {
	mu    sync.Mutex
	wakes int
}

func (m *mockWaker) Wake() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wakes++
}

func (m *mockWaker) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wakes
}

// =============================================================================
// Callback Recording
// =============================================================================

// invocation records a single callback delivery.
type invocation struct {
	tag   string
	dev   *Device
	event Event
}

// recorder collects callback invocations across filters, preserving order.
type recorder struct {
	mu    sync.Mutex
	calls []invocation
}

// cb returns a Callback that records invocations under the given tag.
func (rec *recorder) cb(tag string) Callback {
	return func(r *Registry, dev *Device, event Event, userData any) bool {
		rec.mu.Lock()
		rec.calls = append(rec.calls, invocation{tag: tag, dev: dev, event: event})
		rec.mu.Unlock()
		return false
	}
}

func (rec *recorder) snapshot() []invocation {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]invocation, len(rec.calls))
	copy(out, rec.calls)
	return out
}

func (rec *recorder) len() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.calls)
}

// =============================================================================
// Helpers
// =============================================================================

func dev(id DeviceID, vid, pid uint16, class uint8) *Device {
	return &Device{ID: id, VendorID: vid, ProductID: pid, Class: class}
}

// waitFor polls cond until it holds or the deadline expires.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
