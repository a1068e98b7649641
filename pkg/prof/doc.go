// Package prof provides profiling utilities for the hotplug monitor.
//
// This package wraps [runtime/pprof] with simplified APIs for on-demand
// profiling. It is conditionally compiled using the "profile" build tag:
//
//	go build -tags profile
//	go test -tags profile
//
// When built without the "profile" tag, all exported functions become no-ops,
// so the monitor's --cpuprofile and --memprofile flags cost nothing in
// production builds.
//
// # HTTP Profiling
//
// When built with the "profile" tag, the package automatically registers
// HTTP handlers at /debug/pprof/ via [net/http/pprof] and serves them on
// localhost:6060, useful for inspecting the notifier and watcher goroutines
// of a long-running monitor.
//
// # CPU Profiling
//
// CPU profiling streams samples to a file and requires explicit start/stop:
//
//	prof.StartCPU("cpu.prof")
//	defer prof.StopCPU()
//	// ... code to profile ...
//
// Attempting to start CPU profiling while already active returns
// [ErrCPUProfileActive].
//
// # Snapshot Profiles
//
// Other profiles capture a point-in-time snapshot:
//
//	prof.Write(prof.ProfileHeap, "heap.prof")
//	prof.Write(prof.ProfileGoroutine, "goroutine.prof")
//
// [ProfileCPU] cannot be used with [Write]; use [StartCPU]/[StopCPU] instead.
package prof
