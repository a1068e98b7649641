package hotplug

import "testing"

func TestFilterMatches(t *testing.T) {
	device := dev("1-1", 0x1234, 0x5678, 0x03)

	tests := []struct {
		name    string
		vendor  int32
		product int32
		class   int32
		events  Event
		event   Event
		want    bool
	}{
		{"all wildcards arrived", MatchAny, MatchAny, MatchAny, DeviceArrived | DeviceLeft, DeviceArrived, true},
		{"all wildcards left", MatchAny, MatchAny, MatchAny, DeviceArrived | DeviceLeft, DeviceLeft, true},
		{"exact match", 0x1234, 0x5678, 0x03, DeviceArrived, DeviceArrived, true},
		{"vendor mismatch", 0x9999, MatchAny, MatchAny, DeviceArrived, DeviceArrived, false},
		{"product mismatch", MatchAny, 0x0001, MatchAny, DeviceArrived, DeviceArrived, false},
		{"class mismatch", MatchAny, MatchAny, 0x09, DeviceArrived, DeviceArrived, false},
		{"event not in mask", MatchAny, MatchAny, MatchAny, DeviceArrived, DeviceLeft, false},
		{"empty mask never fires", MatchAny, MatchAny, MatchAny, 0, DeviceArrived, false},
		{"vendor only", 0x1234, MatchAny, MatchAny, DeviceArrived, DeviceArrived, true},
		{"class only", MatchAny, MatchAny, 0x03, DeviceLeft, DeviceLeft, true},
		{"vendor match product mismatch", 0x1234, 0x0001, MatchAny, DeviceArrived, DeviceArrived, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &filter{
				vendorID:    tt.vendor,
				productID:   tt.product,
				deviceClass: tt.class,
				events:      tt.events,
			}
			if got := f.matches(device, tt.event); got != tt.want {
				t.Errorf("matches(%v, %v) = %v, want %v",
					device, tt.event, got, tt.want)
			}
		})
	}
}

// TestFilterMatchesDevice verifies the field predicate alone, which the
// dispatch layer uses for association bookkeeping: the event mask gates
// delivery but never device matching.
func TestFilterMatchesDevice(t *testing.T) {
	device := dev("1-1", 0x1234, 0x5678, 0x03)

	tests := []struct {
		name    string
		vendor  int32
		product int32
		class   int32
		events  Event
		want    bool
	}{
		{"all wildcards", MatchAny, MatchAny, MatchAny, DeviceArrived | DeviceLeft, true},
		{"left-only mask still matches", 0x1234, MatchAny, MatchAny, DeviceLeft, true},
		{"empty mask still matches", MatchAny, MatchAny, 0x03, 0, true},
		{"vendor mismatch", 0x9999, MatchAny, MatchAny, DeviceArrived | DeviceLeft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &filter{
				vendorID:    tt.vendor,
				productID:   tt.product,
				deviceClass: tt.class,
				events:      tt.events,
			}
			if got := f.matchesDevice(device); got != tt.want {
				t.Errorf("matchesDevice(%v) = %v, want %v", device, got, tt.want)
			}
		})
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{DeviceArrived, "arrived"},
		{DeviceLeft, "left"},
		{DeviceArrived | DeviceLeft, "arrived|left"},
		{Event(0), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.event.String(); got != tt.want {
				t.Errorf("Event.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
