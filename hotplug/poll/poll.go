package poll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/karalabe/usb"

	"github.com/ardnew/usbhotplug/hotplug"
	"github.com/ardnew/usbhotplug/pkg"
)

// DefaultInterval is the scan period when Options.Interval is unset.
const DefaultInterval = time.Second

// DispatchFunc receives device transitions observed by the watcher.
// Typically (*hotplug.Registry).Dispatch or (*hotplug.Notifier).Post.
type DispatchFunc func(dev *hotplug.Device, event hotplug.Event)

// Options configure a Watcher.
type Options struct {
	// Interval is the scan period. Defaults to DefaultInterval.
	Interval time.Duration

	// VendorID and ProductID restrict enumeration to a single
	// vendor/product pair. Zero enumerates everything.
	VendorID  uint16
	ProductID uint16
}

// Watcher discovers device arrivals and departures by periodically
// enumerating the bus and diffing against the previous scan. On Linux a
// devfs watch shortens the latency between attach and detection.
//
// Watcher implements [hotplug.Backend].
type Watcher struct {
	dispatch DispatchFunc
	interval time.Duration
	vid, pid uint16

	// enumerate and supported are swappable for tests.
	enumerate func(vendorID, productID uint16) ([]usb.DeviceInfo, error)
	supported func() bool

	mu      sync.Mutex
	known   map[hotplug.DeviceID]*hotplug.Device
	order   []hotplug.DeviceID // first-seen order of known devices
	scanned bool

	rescan chan struct{}
}

// New creates a watcher delivering transitions to dispatch.
func New(dispatch DispatchFunc, opts Options) *Watcher {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		dispatch:  dispatch,
		interval:  interval,
		vid:       opts.VendorID,
		pid:       opts.ProductID,
		enumerate: usb.Enumerate,
		supported: usb.Supported,
		known:     make(map[hotplug.DeviceID]*hotplug.Device),
		rescan:    make(chan struct{}, 1),
	}
}

// HasHotplugCapability reports whether the enumerator can list devices on
// this platform.
func (w *Watcher) HasHotplugCapability() bool {
	return w.supported()
}

// Devices returns the devices present in the most recent scan, in
// first-seen order. If no scan has run yet, one is performed.
func (w *Watcher) Devices() ([]*hotplug.Device, error) {
	w.mu.Lock()
	scanned := w.scanned
	w.mu.Unlock()
	if !scanned {
		if err := w.scan(); err != nil {
			return nil, err
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	devs := make([]*hotplug.Device, 0, len(w.order))
	for _, id := range w.order {
		devs = append(devs, w.known[id])
	}
	return devs, nil
}

// Rescan requests an immediate scan from the run loop. Never blocks.
func (w *Watcher) Rescan() {
	select {
	case w.rescan <- struct{}{}:
	default:
	}
}

// Run scans for device transitions until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.scan(); err != nil {
		pkg.LogWarn(pkg.ComponentBackend, "initial scan failed", "error", err)
	}

	trigger, stop := w.platformTrigger(ctx)
	defer stop()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-w.rescan:
		case <-trigger:
		}
		if err := w.scan(); err != nil {
			pkg.LogWarn(pkg.ComponentBackend, "scan failed", "error", err)
		}
	}
}

// scan enumerates the bus, diffs against the previous scan, and dispatches
// the resulting transitions (departures first, then arrivals, so a replug
// on the same path is seen as left-then-arrived).
func (w *Watcher) scan() error {
	infos, err := w.enumerate(w.vid, w.pid)
	if err != nil {
		return err
	}

	current := make(map[hotplug.DeviceID]*hotplug.Device, len(infos))
	order := make([]hotplug.DeviceID, 0, len(infos))
	for i, info := range infos {
		id := hotplug.DeviceID(info.Path)
		if id == "" {
			id = hotplug.DeviceID(fmt.Sprintf("%04x:%04x#%d", info.VendorID, info.ProductID, i))
		}
		if _, dup := current[id]; dup {
			// Multi-interface devices enumerate once per interface.
			continue
		}
		// The enumerator reports classes per interface only; the device
		// class stays 0 ("defined at interface level").
		current[id] = &hotplug.Device{
			ID:        id,
			VendorID:  info.VendorID,
			ProductID: info.ProductID,
		}
		order = append(order, id)
	}

	var arrived, left []*hotplug.Device
	w.mu.Lock()
	for _, id := range w.order {
		if _, ok := current[id]; !ok {
			left = append(left, w.known[id])
		}
	}
	for _, id := range order {
		if prev, ok := w.known[id]; ok {
			// Keep the original Device value for a stable identity.
			current[id] = prev
		} else {
			arrived = append(arrived, current[id])
		}
	}
	w.known = current
	w.order = order
	w.scanned = true
	w.mu.Unlock()

	for _, dev := range left {
		pkg.LogDebug(pkg.ComponentBackend, "device left", "device", dev.String())
		w.dispatch(dev, hotplug.DeviceLeft)
	}
	for _, dev := range arrived {
		pkg.LogDebug(pkg.ComponentBackend, "device arrived", "device", dev.String())
		w.dispatch(dev, hotplug.DeviceArrived)
	}
	return nil
}
