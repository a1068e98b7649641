//go:build linux

package poll

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/usbhotplug/pkg"
)

// devBusUSB is the devfs tree whose entries appear and disappear with
// device attach/detach.
const devBusUSB = "/dev/bus/usb"

// platformTrigger produces a channel that fires when an attach/detach is
// likely, so the watcher rescans without waiting for the next timed scan.
//
// The primary source is the kernel's netlink uevent broadcast. When the
// socket cannot be opened (unprivileged sandboxes, restricted namespaces)
// it falls back to an fsnotify watch on the USB devfs tree. Returns a nil
// channel (and a no-op stop) when neither is available; timed scans still
// run.
func (w *Watcher) platformTrigger(ctx context.Context) (<-chan struct{}, func()) {
	ch, stop, err := w.ueventTrigger(ctx)
	if err == nil {
		return ch, stop
	}
	pkg.LogWarn(pkg.ComponentBackend, "netlink uevent unavailable, trying fsnotify",
		"error", err)
	return w.fsnotifyTrigger(ctx)
}

// ueventTrigger turns kernel uevent broadcasts for USB devices into
// coalesced rescan tokens.
func (w *Watcher) ueventTrigger(ctx context.Context) (<-chan struct{}, func(), error) {
	sock, err := openUEventSocket()
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan struct{}, 1)
	go func() {
		buf := make([]byte, ueventBufferSize)
		for {
			evt, err := sock.read(buf)
			if err != nil {
				// Socket closed by stop, or the context ended.
				if ctx.Err() == nil {
					pkg.LogDebug(pkg.ComponentBackend, "uevent socket closed",
						"error", err)
				}
				return
			}
			if !evt.isDeviceTransition() {
				continue
			}
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}()
	return ch, func() { sock.close() }, nil
}

// fsnotifyTrigger watches the USB devfs tree for created or removed
// device nodes.
func (w *Watcher) fsnotifyTrigger(ctx context.Context) (<-chan struct{}, func()) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		pkg.LogWarn(pkg.ComponentBackend, "fsnotify unavailable, timed scans only",
			"error", err)
		return nil, func() {}
	}

	watched := 0
	if err := fsw.Add(devBusUSB); err == nil {
		watched++
	}
	if buses, err := os.ReadDir(devBusUSB); err == nil {
		for _, bus := range buses {
			if !bus.IsDir() {
				continue
			}
			if err := fsw.Add(filepath.Join(devBusUSB, bus.Name())); err == nil {
				watched++
			}
		}
	}
	if watched == 0 {
		fsw.Close()
		return nil, func() {}
	}

	ch := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Remove) == 0 {
					continue
				}
				// A new bus directory needs its own watch.
				if ev.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						_ = fsw.Add(ev.Name)
					}
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return ch, func() { fsw.Close() }
}
