//go:build linux

// Package sysfs enumerates attached USB devices from /sys/bus/usb/devices.
//
// It is an alternative device-discovery collaborator for the hotplug
// registry on Linux. Compared to portable bus enumeration it has one
// advantage: sysfs exposes bDeviceClass, so filters registered with a
// class criterion can match without opening the device.
//
//	enum := sysfs.New()
//	reg := hotplug.New(enum)
//
// The Enumerator provides snapshots only. Pair it with a polling or
// inotify-driven loop to observe transitions.
package sysfs
