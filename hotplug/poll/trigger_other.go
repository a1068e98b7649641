//go:build !linux

package poll

import "context"

// platformTrigger has no accelerated path off Linux; timed scans only.
func (w *Watcher) platformTrigger(ctx context.Context) (<-chan struct{}, func()) {
	return nil, func() {}
}
