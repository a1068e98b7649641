package hotplug

// matchesDevice reports whether the filter's field criteria accept dev.
// Pure predicate: no side effects, no allocation. The event mask gates
// callback delivery only; it does not participate in device matching, so
// a filter subscribed only to departures still tracks matching arrivals.
func (f *filter) matchesDevice(dev *Device) bool {
	if f.vendorID != MatchAny && uint16(f.vendorID) != dev.VendorID {
		return false
	}
	if f.productID != MatchAny && uint16(f.productID) != dev.ProductID {
		return false
	}
	if f.deviceClass != MatchAny && uint8(f.deviceClass) != dev.Class {
		return false
	}
	return true
}

// matches additionally requires event to be in the filter's mask.
func (f *filter) matches(dev *Device, event Event) bool {
	return f.events&event != 0 && f.matchesDevice(dev)
}
