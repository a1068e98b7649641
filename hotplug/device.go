package hotplug

import "fmt"

// DeviceID is an opaque device identity assigned by the enumerator. Two
// Device values with equal IDs refer to the same physical device within
// one enumerator session.
type DeviceID string

// Device describes a USB device as seen by the enumerator. It is immutable
// once created; its lifetime is owned by the enumerator, not the registry.
type Device struct {
	ID        DeviceID // Enumerator-assigned identity (e.g. platform path)
	VendorID  uint16   // idVendor
	ProductID uint16   // idProduct
	Class     uint8    // bDeviceClass
}

// String returns a short description suitable for logging.
func (d *Device) String() string {
	return fmt.Sprintf("%04x:%04x [%s]", d.VendorID, d.ProductID, d.ID)
}
