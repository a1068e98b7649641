package hotplug

// Backend is the device-discovery collaborator consumed by the registry.
//
// Implementations enumerate devices in a platform-specific way (polling a
// device filesystem, an OS notification API, a fake list in tests) and
// deliver transitions by calling [Registry.Dispatch], directly or through
// a [Notifier].
type Backend interface {
	// HasHotplugCapability reports whether the platform can deliver
	// hotplug events. Register fails with pkg.ErrNotSupported when false.
	HasHotplugCapability() bool

	// Devices returns the currently known devices in a stable order.
	// Consumed only by registrations carrying FlagEnumerate.
	Devices() ([]*Device, error)
}

// Waker is the cross-thread wakeup channel consumed by the registry's
// removal protocol: Deregister writes one token per call, and the owner
// of the wakeup channel is expected to respond with a reclamation pass
// ([Registry.Sweep] or any dispatch).
//
// Wake must never block and must be safe to call from within a callback.
type Waker interface {
	Wake()
}
