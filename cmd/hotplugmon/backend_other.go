//go:build !linux

package main

import (
	"github.com/ardnew/usbhotplug/hotplug"
)

// classAwareDevices always falls back to portable enumeration off Linux.
func classAwareDevices() ([]*hotplug.Device, bool) {
	return nil, false
}
