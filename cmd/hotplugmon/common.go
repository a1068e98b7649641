package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ardnew/usbhotplug/hotplug"
)

// parseMatch converts a descriptor-field flag value to a match criterion.
// Accepts "any" (case-insensitive), or a hex value within max.
func parseMatch(flag, value string, max int32) (int32, error) {
	if strings.EqualFold(value, "any") {
		return hotplug.MatchAny, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(value, "0x"), 16, 32)
	if err != nil || int32(v) > max {
		return 0, fmt.Errorf("invalid --%s value %q: want hex value up to %x or 'any'", flag, value, max)
	}
	return int32(v), nil
}

// record is the JSON shape of one reported transition or listed device.
type record struct {
	Time    string           `json:"time,omitempty"`
	Event   string           `json:"event,omitempty"`
	Device  hotplug.DeviceID `json:"device"`
	Vendor  string           `json:"vendor"`
	Product string           `json:"product"`
	Class   string           `json:"class,omitempty"`

	VendorName  string `json:"vendor_name,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	ClassName   string `json:"class_name,omitempty"`
}

// printer formats transitions and device listings for stdout.
type printer struct {
	asJSON bool
	names  *names
	enc    *json.Encoder
}

func newPrinter(asJSON bool) *printer {
	p := &printer{asJSON: asJSON, names: loadNames()}
	if asJSON {
		p.enc = json.NewEncoder(os.Stdout)
	}
	return p
}

func (p *printer) newRecord(dev *hotplug.Device) record {
	r := record{
		Device:      dev.ID,
		Vendor:      fmt.Sprintf("%04x", dev.VendorID),
		Product:     fmt.Sprintf("%04x", dev.ProductID),
		VendorName:  p.names.vendor(dev.VendorID),
		ProductName: p.names.product(dev.VendorID, dev.ProductID),
	}
	if dev.Class != 0 {
		r.Class = fmt.Sprintf("%02x", dev.Class)
		r.ClassName = p.names.class(dev.Class)
	}
	return r
}

// event prints one device transition.
func (p *printer) event(dev *hotplug.Device, event hotplug.Event) {
	r := p.newRecord(dev)
	r.Time = time.Now().Format(time.RFC3339)
	r.Event = event.String()

	if p.asJSON {
		p.enc.Encode(r)
		return
	}
	fmt.Printf("%s %-8s %s:%s %s%s\n",
		r.Time, r.Event, r.Vendor, r.Product, r.Device, p.annotation(r))
}

// device prints one listed device.
func (p *printer) device(dev *hotplug.Device) {
	r := p.newRecord(dev)

	if p.asJSON {
		p.enc.Encode(r)
		return
	}
	fmt.Printf("%s:%s %s%s\n", r.Vendor, r.Product, r.Device, p.annotation(r))
}

func (p *printer) annotation(r record) string {
	var parts []string
	if r.VendorName != "" {
		parts = append(parts, r.VendorName)
	}
	if r.ProductName != "" {
		parts = append(parts, r.ProductName)
	}
	if r.ClassName != "" {
		parts = append(parts, "["+r.ClassName+"]")
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, " ")
}
