// Command hotplugmon monitors USB device attach and detach activity.
//
// It wires the polling watcher, the notifier event loop, and the filter
// registry together and prints each matched transition. On Linux the
// USB ID database annotates events with vendor, product, and class names.
package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ardnew/usbhotplug/pkg"
)

var Version = "v0.0.0"

// Component identifier for hotplugmon logging.
const componentMonitor pkg.Component = "monitor"

// matchFlags are shared by commands that filter by descriptor fields.
var matchFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "vid",
		Value: "any",
		Usage: "vendor ID to match (hex, e.g. 1d6b), or 'any'",
	},
	&cli.StringFlag{
		Name:  "pid",
		Value: "any",
		Usage: "product ID to match (hex, e.g. 0002), or 'any'",
	},
	&cli.StringFlag{
		Name:  "class",
		Value: "any",
		Usage: "device class to match (hex, e.g. 03), or 'any'",
	},
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			pkg.LogError(componentMonitor,
				"unexpected panic recovered",
				"error", r,
				"stack_trace", string(debug.Stack()),
			)
			os.Exit(2)
		}
	}()

	app := &cli.App{
		Name:    "hotplugmon",
		Usage:   "monitor USB device attach and detach activity",
		Version: Version,
		Commands: []*cli.Command{
			{
				Name:  "watch",
				Usage: "watch for device transitions and print each one",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:    "enumerate",
						Aliases: []string{"e"},
						Usage:   "report devices already attached at startup",
					},
					&cli.BoolFlag{
						Name:  "arrivals-only",
						Usage: "report only device arrivals",
					},
					&cli.BoolFlag{
						Name:  "departures-only",
						Usage: "report only device departures",
					},
					&cli.DurationFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Value:   time.Second,
						Usage:   "bus scan interval",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "emit one JSON object per transition",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "enable debug logging",
					},
					&cli.StringFlag{
						Name:  "cpuprofile",
						Usage: "write a CPU profile to this path on exit (requires the 'profile' build tag)",
					},
					&cli.StringFlag{
						Name:  "memprofile",
						Usage: "write a heap profile to this path on exit (requires the 'profile' build tag)",
					},
				}, matchFlags...),
				Action: watch,
			},
			{
				Name:   "list",
				Usage:  "list currently attached devices and exit",
				Flags:  append([]cli.Flag{&cli.BoolFlag{Name: "json", Usage: "emit one JSON object per device"}}, matchFlags...),
				Action: list,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "hotplugmon:", err)
		os.Exit(1)
	}
}
