// Package pkg provides shared utilities for the hotplug subsystem.
//
// This package contains common functionality used across the registry,
// dispatch, and backend layers, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error values for registration failures
//   - Component identifiers for log filtering
//
// # Logging
//
// The logging subsystem wraps [log/slog] with hotplug-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentRegistry, "filter registered", "handle", h)
//
// # Errors
//
// Registration failures are reported as sentinel values:
//
//	if errors.Is(err, pkg.ErrNotSupported) {
//	    // Platform lacks hotplug capability
//	}
package pkg
