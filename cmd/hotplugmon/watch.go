package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ardnew/usbhotplug/hotplug"
	"github.com/ardnew/usbhotplug/hotplug/poll"
	"github.com/ardnew/usbhotplug/pkg"
	"github.com/ardnew/usbhotplug/pkg/prof"
)

func watch(cCtx *cli.Context) error {
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

	events := hotplug.DeviceArrived | hotplug.DeviceLeft
	switch {
	case cCtx.Bool("arrivals-only") && cCtx.Bool("departures-only"):
		return errors.New("--arrivals-only and --departures-only are mutually exclusive")
	case cCtx.Bool("arrivals-only"):
		events = hotplug.DeviceArrived
	case cCtx.Bool("departures-only"):
		events = hotplug.DeviceLeft
	}

	if cCtx.Bool("verbose") {
		pkg.SetLogLevel(slog.LevelDebug)
	}

	if path := cCtx.String("cpuprofile"); path != "" {
		if err := prof.StartCPU(path); err != nil {
			return fmt.Errorf("cpu profile failed: %w", err)
		}
		defer prof.StopCPU()
	}
	if path := cCtx.String("memprofile"); path != "" {
		defer prof.Write(prof.ProfileHeap, path)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The watcher posts into the notifier, whose run loop dispatches into
	// the registry. The notifier needs the registry and the watcher needs
	// the notifier, so the watcher captures it through a closure.
	var notifier *hotplug.Notifier
	watcher := poll.New(func(dev *hotplug.Device, event hotplug.Event) {
		notifier.Post(dev, event)
	}, poll.Options{Interval: cCtx.Duration("interval")})

	reg := hotplug.New(watcher)
	defer reg.Close()
	notifier = hotplug.NewNotifier(reg)

	var flags hotplug.Flag
	if cCtx.Bool("enumerate") {
		flags |= hotplug.FlagEnumerate
	}

	p := newPrinter(cCtx.Bool("json"))
	_, err = reg.Register(vid, pid, class, events, flags,
		func(_ *hotplug.Registry, dev *hotplug.Device, event hotplug.Event, _ any) bool {
			p.event(dev, event)
			return false
		}, nil)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	wg := &sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		notifier.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		watcher.Run(ctx)
	}()

	<-ctx.Done()
	wg.Wait()
	return nil
}
