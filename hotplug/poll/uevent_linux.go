//go:build linux

package poll

import (
	"bytes"
	"strings"

	"golang.org/x/sys/unix"
)

// ueventBufferSize is the buffer size for netlink messages.
const ueventBufferSize = 4096

// ueventAction is the udev action carried by a netlink uevent.
type ueventAction uint8

const (
	ueventOther ueventAction = iota
	ueventAdd
	ueventRemove
)

// uevent is a parsed netlink uevent, reduced to the fields that decide
// whether a rescan is warranted.
type uevent struct {
	action    ueventAction
	devpath   string // DEVPATH value
	subsystem string // SUBSYSTEM value
	devtype   string // DEVTYPE value
}

// isDeviceTransition reports whether the event announces a USB device
// attach or detach. Interface events (devtype "usb_interface") and other
// subsystems are ignored; the scan diff handles per-device state.
func (e uevent) isDeviceTransition() bool {
	if e.action != ueventAdd && e.action != ueventRemove {
		return false
	}
	return e.subsystem == "usb" && e.devtype == "usb_device"
}

// parseUEvent parses a netlink uevent message: a header line of the form
// "action@devpath" followed by null-terminated KEY=value pairs.
func parseUEvent(data []byte) uevent {
	evt := uevent{}

	for _, line := range bytes.Split(data, []byte{0}) {
		if len(line) == 0 {
			continue
		}
		s := string(line)

		idx := strings.IndexByte(s, '=')
		if idx < 0 {
			if action, devpath, ok := strings.Cut(s, "@"); ok {
				evt.action = parseUEventAction(action)
				evt.devpath = devpath
			}
			continue
		}

		switch s[:idx] {
		case "ACTION":
			evt.action = parseUEventAction(s[idx+1:])
		case "DEVPATH":
			evt.devpath = s[idx+1:]
		case "SUBSYSTEM":
			evt.subsystem = s[idx+1:]
		case "DEVTYPE":
			evt.devtype = s[idx+1:]
		}
	}

	return evt
}

// parseUEventAction maps an action name to its classification.
func parseUEventAction(s string) ueventAction {
	switch s {
	case "add":
		return ueventAdd
	case "remove":
		return ueventRemove
	default:
		return ueventOther
	}
}

// ueventSocket is a netlink socket subscribed to kernel uevent broadcasts.
type ueventSocket struct {
	fd int
}

// openUEventSocket creates a netlink socket bound to the kernel uevent
// broadcast group.
func openUEventSocket() (*ueventSocket, error) {
	fd, err := unix.Socket(
		unix.AF_NETLINK,
		unix.SOCK_DGRAM|unix.SOCK_CLOEXEC,
		unix.NETLINK_KOBJECT_UEVENT,
	)
	if err != nil {
		return nil, err
	}
	if err := unix.Bind(fd, &unix.SockaddrNetlink{
		Family: unix.AF_NETLINK,
		Groups: 1, // kernel broadcast group
	}); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return &ueventSocket{fd: fd}, nil
}

// read blocks until one uevent message arrives and returns it parsed.
// Returns an error once the socket is closed.
func (s *ueventSocket) read(buf []byte) (uevent, error) {
	n, err := unix.Read(s.fd, buf)
	if err != nil {
		return uevent{}, err
	}
	return parseUEvent(buf[:n]), nil
}

// close releases the socket; a blocked read returns with an error.
func (s *ueventSocket) close() error {
	return unix.Close(s.fd)
}
