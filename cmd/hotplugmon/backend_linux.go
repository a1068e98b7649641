//go:build linux

package main

import (
	"github.com/ardnew/usbhotplug/hotplug"
	"github.com/ardnew/usbhotplug/hotplug/sysfs"
)

// classAwareDevices returns a sysfs device snapshot when available.
// Sysfs reports bDeviceClass, so class filters and class-name annotation
// work; portable enumeration does not expose it.
func classAwareDevices() ([]*hotplug.Device, bool) {
	e := sysfs.New()
	if !e.HasHotplugCapability() {
		return nil, false
	}
	devs, err := e.Devices()
	if err != nil {
		return nil, false
	}
	return devs, true
}
