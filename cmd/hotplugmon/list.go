package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ardnew/usbhotplug/hotplug"
	"github.com/ardnew/usbhotplug/hotplug/poll"
)

func list(cCtx *cli.Context) error {
	vid, err := parseMatch("vid", cCtx.String("vid"), hotplug.MaxVendorID)
	if err != nil {
		return err
	}
	pid, err := parseMatch("pid", cCtx.String("pid"), hotplug.MaxProductID)
	if err != nil {
		return err
	}
	class, err := parseMatch("class", cCtx.String("class"), hotplug.MaxClass)
	if err != nil {
		return err
	}

	devs, ok := classAwareDevices()
	if !ok {
		watcher := poll.New(func(*hotplug.Device, hotplug.Event) {}, poll.Options{})
		if !watcher.HasHotplugCapability() {
			return fmt.Errorf("device enumeration is not supported on this platform")
		}
		if devs, err = watcher.Devices(); err != nil {
			return fmt.Errorf("enumeration failed: %w", err)
		}
	}

	p := newPrinter(cCtx.Bool("json"))
	for _, dev := range devs {
		if vid != hotplug.MatchAny && int32(dev.VendorID) != vid {
			continue
		}
		if pid != hotplug.MatchAny && int32(dev.ProductID) != pid {
			continue
		}
		if class != hotplug.MatchAny && int32(dev.Class) != class {
			continue
		}
		p.device(dev)
	}
	return nil
}
