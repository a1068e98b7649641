//go:build linux

package wakeup

import (
	"sync"

	"golang.org/x/sys/unix"

	"github.com/ardnew/usbhotplug/pkg"
)

// Pipe is an OS-level byte pipe wakeup channel. Wake writes one byte to
// the write end; an external event loop polls the read end alongside its
// other descriptors and drains it before running a reclamation pass.
type Pipe struct {
	mu     sync.Mutex
	r, w   int
	closed bool
}

// NewPipe creates a non-blocking, close-on-exec pipe.
func NewPipe() (*Pipe, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC|unix.O_NONBLOCK); err != nil {
		return nil, err
	}
	return &Pipe{r: fds[0], w: fds[1]}, nil
}

// Wake writes one wakeup token. A full pipe is not an error: the pending
// tokens already guarantee a wakeup.
func (p *Pipe) Wake() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if _, err := unix.Write(p.w, []byte{0}); err != nil && err != unix.EAGAIN {
		pkg.LogError(pkg.ComponentWakeup, "error writing wakeup token",
			"error", err)
	}
}

// ReadFD returns the read end of the pipe for use in a poll set. Returns
// -1 after Close.
func (p *Pipe) ReadFD() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return -1
	}
	return p.r
}

// Drain consumes all pending tokens and returns how many were read.
func (p *Pipe) Drain() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0
	}
	total := 0
	var buf [64]byte
	for {
		n, err := unix.Read(p.r, buf[:])
		if n > 0 {
			total += n
		}
		if err != nil || n < len(buf) {
			return total
		}
	}
}

// Close releases both ends of the pipe.
func (p *Pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return pkg.ErrClosed
	}
	p.closed = true
	err := unix.Close(p.r)
	if cerr := unix.Close(p.w); err == nil {
		err = cerr
	}
	return err
}
