//go:build linux

package wakeup

import (
	"errors"
	"testing"

	"github.com/ardnew/usbhotplug/pkg"
)

func TestPipe_WakeAndDrain(t *testing.T) {
	p, err := NewPipe()
	if err != nil {
		t.Fatalf("NewPipe() failed: %v", err)
	}
	defer p.Close()

	p.Wake()
	p.Wake()
	p.Wake()

	if got := p.Drain(); got != 3 {
		t.Errorf("Drain() = %d tokens, want 3", got)
	}
	if got := p.Drain(); got != 0 {
		t.Errorf("second Drain() = %d tokens, want 0", got)
	}
}

func TestPipe_ReadFD(t *testing.T) {
	p, err := NewPipe()
	if err != nil {
		t.Fatalf("NewPipe() failed: %v", err)
	}

	if fd := p.ReadFD(); fd < 0 {
		t.Errorf("ReadFD() = %d, want a valid descriptor", fd)
	}

	if err := p.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if fd := p.ReadFD(); fd != -1 {
		t.Errorf("ReadFD() after Close = %d, want -1", fd)
	}
}

func TestPipe_UseAfterClose(t *testing.T) {
	p, err := NewPipe()
	if err != nil {
		t.Fatalf("NewPipe() failed: %v", err)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := p.Close(); !errors.Is(err, pkg.ErrClosed) {
		t.Errorf("second Close() = %v, want %v", err, pkg.ErrClosed)
	}

	// Wake and Drain after close are no-ops, not crashes.
	p.Wake()
	if got := p.Drain(); got != 0 {
		t.Errorf("Drain() after Close = %d, want 0", got)
	}
}
