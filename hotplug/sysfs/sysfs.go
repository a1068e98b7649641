//go:build linux

package sysfs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ardnew/usbhotplug/hotplug"
	"github.com/ardnew/usbhotplug/pkg"
)

// DefaultRoot is the base path for USB devices in sysfs.
const DefaultRoot = "/sys/bus/usb/devices"

// Enumerator lists attached USB devices by reading sysfs attributes.
// Unlike portable enumeration it reports bDeviceClass, so class-based
// filters can match at the device level.
//
// Enumerator implements [hotplug.Backend].
type Enumerator struct {
	root string
}

// New creates an enumerator reading from the standard sysfs location.
func New() *Enumerator {
	return NewWithRoot(DefaultRoot)
}

// NewWithRoot creates an enumerator reading from the given directory.
func NewWithRoot(root string) *Enumerator {
	return &Enumerator{root: root}
}

// HasHotplugCapability reports whether the sysfs device directory exists.
func (e *Enumerator) HasHotplugCapability() bool {
	fi, err := os.Stat(e.root)
	return err == nil && fi.IsDir()
}

// Devices scans sysfs and returns the attached devices in directory order.
//
// Entries named "usbN" (root hubs) and entries containing ':' (interface
// nodes) are skipped, matching the udev convention that "1-1", "1-1.2",
// etc. name the devices themselves.
func (e *Enumerator) Devices() ([]*hotplug.Device, error) {
	entries, err := os.ReadDir(e.root)
	if err != nil {
		return nil, err
	}

	var devs []*hotplug.Device
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "usb") || strings.Contains(name, ":") {
			continue
		}
		dev, err := e.parseDevice(name)
		if err != nil {
			pkg.LogDebug(pkg.ComponentBackend, "skipping unreadable sysfs entry",
				"entry", name,
				"error", err)
			continue
		}
		devs = append(devs, dev)
	}
	return devs, nil
}

// parseDevice reads the descriptor attributes of one device directory.
// idVendor and idProduct are required; bDeviceClass defaults to 0 when
// absent (defined at interface level).
func (e *Enumerator) parseDevice(name string) (*hotplug.Device, error) {
	dir := filepath.Join(e.root, name)

	vid, err := readHex16(filepath.Join(dir, "idVendor"))
	if err != nil {
		return nil, err
	}
	pid, err := readHex16(filepath.Join(dir, "idProduct"))
	if err != nil {
		return nil, err
	}

	dev := &hotplug.Device{
		ID:        hotplug.DeviceID(name),
		VendorID:  vid,
		ProductID: pid,
	}
	if class, err := readHex8(filepath.Join(dir, "bDeviceClass")); err == nil {
		dev.Class = class
	}
	return dev, nil
}

// readAttr reads a sysfs attribute file as a trimmed string.
func readAttr(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// readHex reads a hexadecimal sysfs attribute.
func readHex(path string, bitSize int) (uint64, error) {
	s, err := readAttr(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, bitSize)
}

// readHex16 reads a hexadecimal uint16 sysfs attribute.
func readHex16(path string) (uint16, error) {
	v, err := readHex(path, 16)
	return uint16(v), err
}

// readHex8 reads a hexadecimal uint8 sysfs attribute.
func readHex8(path string) (uint8, error) {
	v, err := readHex(path, 8)
	return uint8(v), err
}
