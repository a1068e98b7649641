// Package poll implements the device-discovery collaborator for the
// hotplug registry by polling the USB bus.
//
// A Watcher periodically enumerates attached devices and diffs the result
// against the previous scan; each difference becomes a DeviceArrived or
// DeviceLeft transition delivered to a dispatch function. On Linux, kernel
// uevent broadcasts (or, without netlink access, a filesystem watch on
// /dev/bus/usb) trigger an immediate rescan so that attach/detach latency
// is not bounded by the scan interval.
//
// The Watcher also implements [hotplug.Backend], providing the capability
// query and the current-device snapshot consumed by registrations carrying
// hotplug.FlagEnumerate.
//
//	watcher := poll.New(notifier.Post, poll.Options{})
//	reg := hotplug.New(watcher)
//	go watcher.Run(ctx)
package poll
