package hotplug

// Event identifies a device transition. Events are bit flags so that a
// single filter can subscribe to any combination.
type Event uint8

// Device transition events.
const (
	// DeviceArrived fires when a device becomes visible to the enumerator.
	DeviceArrived Event = 1 << iota

	// DeviceLeft fires when a previously seen device disappears.
	DeviceLeft
)

// String returns a human-readable event name.
func (e Event) String() string {
	switch e {
	case DeviceArrived:
		return "arrived"
	case DeviceLeft:
		return "left"
	case DeviceArrived | DeviceLeft:
		return "arrived|left"
	default:
		return "unknown"
	}
}

// MatchAny is the wildcard sentinel for filter fields: a field set to
// MatchAny matches every device.
const MatchAny int32 = -1

// Filter field limits (USB 2.0 Specification).
const (
	MaxVendorID  = 0xFFFF // idVendor is 16 bits
	MaxProductID = 0xFFFF // idProduct is 16 bits
	MaxClass     = 0xFF   // bDeviceClass is 8 bits
)

// MaxFilters is the registry capacity. Registration beyond this limit
// fails with pkg.ErrNoMemory.
const MaxFilters = 256

// Flag modifies registration behavior.
type Flag uint8

// Registration flags.
const (
	// FlagEnumerate requests a synthetic DeviceArrived delivery for every
	// currently known device immediately after registration.
	FlagEnumerate Flag = 1 << iota
)

// Handle identifies a registered filter for later deregistration. Handles
// are process-wide monotonically increasing and never reused.
type Handle int64
