package hotplug

// Callback receives a matching device transition. It runs with the
// registry lock released, so it may freely call Register, Deregister, or
// Dispatch on the same registry.
//
// Returning true detaches the filter: it is unlinked as if Deregister had
// been called, and its disconnect path fires for any remaining device
// associations.
type Callback func(r *Registry, dev *Device, event Event, userData any) bool

// filter is a registered callback entry. It is owned exclusively by the
// registry from insertion until reclamation; all fields except handle and
// the match criteria are guarded by the registry lock.
type filter struct {
	handle      Handle
	vendorID    int32 // MatchAny or 0..MaxVendorID
	productID   int32 // MatchAny or 0..MaxProductID
	deviceClass int32 // MatchAny or 0..MaxClass
	events      Event
	callback    Callback
	userData    any

	// pendingRemoval marks the entry for lazy reclamation by the next
	// dispatch pass (two-phase removal).
	pendingRemoval bool

	// devices tracks which devices this filter currently considers
	// connected, in arrival order. DeviceLeft is routed only to filters
	// holding an association for the departing device.
	devices []*Device
}

// connected reports whether the filter holds an association for id.
func (f *filter) connected(id DeviceID) bool {
	for _, d := range f.devices {
		if d.ID == id {
			return true
		}
	}
	return false
}

// connect records a device association.
func (f *filter) connect(dev *Device) {
	f.devices = append(f.devices, dev)
}

// disconnect drops the association for id, if present.
func (f *filter) disconnect(id DeviceID) {
	for i, d := range f.devices {
		if d.ID == id {
			f.devices = append(f.devices[:i], f.devices[i+1:]...)
			return
		}
	}
}
