//go:build linux

package poll

import (
	"strings"
	"testing"
)

// msg builds a netlink uevent payload from its null-terminated lines.
func msg(lines ...string) []byte {
	return []byte(strings.Join(lines, "\x00"))
}

func TestParseUEvent(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uevent
	}{
		{
			"header only",
			msg("add@/devices/pci0000:00/usb1/1-1"),
			uevent{action: ueventAdd, devpath: "/devices/pci0000:00/usb1/1-1"},
		},
		{
			"full add",
			msg("add@/devices/pci0000:00/usb1/1-1",
				"ACTION=add",
				"DEVPATH=/devices/pci0000:00/usb1/1-1",
				"SUBSYSTEM=usb",
				"DEVTYPE=usb_device",
				"BUSNUM=001",
				"DEVNUM=004"),
			uevent{
				action:    ueventAdd,
				devpath:   "/devices/pci0000:00/usb1/1-1",
				subsystem: "usb",
				devtype:   "usb_device",
			},
		},
		{
			"remove",
			msg("remove@/devices/pci0000:00/usb1/1-1",
				"ACTION=remove",
				"SUBSYSTEM=usb",
				"DEVTYPE=usb_device"),
			uevent{
				action:    ueventRemove,
				devpath:   "/devices/pci0000:00/usb1/1-1",
				subsystem: "usb",
				devtype:   "usb_device",
			},
		},
		{
			"bind classified as other",
			msg("bind@/devices/pci0000:00/usb1/1-1",
				"ACTION=bind",
				"SUBSYSTEM=usb",
				"DEVTYPE=usb_device"),
			uevent{
				action:    ueventOther,
				devpath:   "/devices/pci0000:00/usb1/1-1",
				subsystem: "usb",
				devtype:   "usb_device",
			},
		},
		{
			"empty",
			nil,
			uevent{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseUEvent(tt.data); got != tt.want {
				t.Errorf("parseUEvent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUEvent_IsDeviceTransition(t *testing.T) {
	tests := []struct {
		name string
		evt  uevent
		want bool
	}{
		{"usb device add", uevent{action: ueventAdd, subsystem: "usb", devtype: "usb_device"}, true},
		{"usb device remove", uevent{action: ueventRemove, subsystem: "usb", devtype: "usb_device"}, true},
		{"interface add ignored", uevent{action: ueventAdd, subsystem: "usb", devtype: "usb_interface"}, false},
		{"other subsystem ignored", uevent{action: ueventAdd, subsystem: "block", devtype: "disk"}, false},
		{"change ignored", uevent{action: ueventOther, subsystem: "usb", devtype: "usb_device"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.evt.isDeviceTransition(); got != tt.want {
				t.Errorf("isDeviceTransition(%+v) = %v, want %v", tt.evt, got, tt.want)
			}
		})
	}
}
