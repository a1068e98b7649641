package hotplug

import (
	"context"
	"errors"
	"testing"
)

func TestNotifier_PostDelivers(t *testing.T) {
	d1 := dev("1-1", 0x1234, 0x0001, 0)
	reg := New(newMockBackend())
	defer reg.Close()
	n := NewNotifier(reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		n.Run(ctx)
	}()

	rec := &recorder{}
	if _, err := reg.Register(MatchAny, MatchAny, MatchAny, DeviceArrived|DeviceLeft, 0, rec.cb("f"), nil); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	n.Post(d1, DeviceArrived)
	waitFor(t, "arrival delivery", func() bool { return rec.len() == 1 })

	n.Post(d1, DeviceLeft)
	waitFor(t, "departure delivery", func() bool { return rec.len() == 2 })

	calls := rec.snapshot()
	if calls[0].event != DeviceArrived || calls[1].event != DeviceLeft {
		t.Errorf("delivery order: %+v", calls)
	}

	cancel()
	<-done
}

// TestNotifier_DeregisterTriggersSweep verifies bounded-time reclamation:
// with no device traffic at all, a deregistration alone must reach the
// filter's disconnect path via the wakeup token.
func TestNotifier_DeregisterTriggersSweep(t *testing.T) {
	d1 := dev("1-1", 0x1234, 0x0001, 0)
	reg := New(newMockBackend())
	defer reg.Close()
	n := NewNotifier(reg)

	rec := &recorder{}
	h, err := reg.Register(MatchAny, MatchAny, MatchAny, DeviceArrived|DeviceLeft, 0, rec.cb("f"), nil)
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	// Associate a device before starting the loop.
	reg.Dispatch(d1, DeviceArrived)
	if rec.len() != 1 {
		t.Fatalf("arrival fired %d times, want 1", rec.len())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		n.Run(ctx)
	}()

	reg.Deregister(h)

	waitFor(t, "sweep reclamation", func() bool { return rec.len() == 2 })
	calls := rec.snapshot()
	if calls[1].event != DeviceLeft || calls[1].dev != d1 {
		t.Errorf("reclaim call = %+v, want left for d1", calls[1])
	}
	waitFor(t, "registry empty", func() bool { return reg.Count() == 0 })

	cancel()
	<-done
}

func TestNotifier_PendingCounts(t *testing.T) {
	d1 := dev("1-1", 0x1234, 0x0001, 0)
	reg := New(newMockBackend())
	defer reg.Close()
	n := NewNotifier(reg)

	n.Post(d1, DeviceArrived)
	n.Post(d1, DeviceLeft)
	if got := n.Pending(); got != 2 {
		t.Errorf("Pending() = %d, want 2", got)
	}

	// Drain directly (no run loop).
	if !n.drain() {
		t.Error("drain() = false with queued messages")
	}
	if got := n.Pending(); got != 0 {
		t.Errorf("Pending() after drain = %d, want 0", got)
	}
	if n.drain() {
		t.Error("drain() = true with empty queue")
	}
}

func TestNotifier_RunStopsOnCancel(t *testing.T) {
	reg := New(newMockBackend())
	defer reg.Close()
	n := NewNotifier(reg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want %v", err, context.Canceled)
	}
}
