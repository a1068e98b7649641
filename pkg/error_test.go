package pkg

import (
	"errors"
	"testing"
)

func TestRegisterStatus_String(t *testing.T) {
	tests := []struct {
		status RegisterStatus
		want   string
	}{
		{RegisterStatusOK, "ok"},
		{RegisterStatusNotSupported, "not supported"},
		{RegisterStatusInvalid, "invalid parameter"},
		{RegisterStatusNoMemory, "no memory"},
		{RegisterStatusNotRunning, "not running"},
		{RegisterStatus(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.status.String(); got != tt.want {
				t.Errorf("RegisterStatus.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegisterStatus_Error(t *testing.T) {
	tests := []struct {
		status  RegisterStatus
		wantErr error
	}{
		{RegisterStatusOK, nil},
		{RegisterStatusNotSupported, ErrNotSupported},
		{RegisterStatusInvalid, ErrInvalidParameter},
		{RegisterStatusNoMemory, ErrNoMemory},
		{RegisterStatusNotRunning, ErrNotRunning},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			err := tt.status.Error()
			if tt.wantErr == nil && err != nil {
				t.Errorf("RegisterStatus.Error() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("RegisterStatus.Error() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStatusOf_RoundTrip(t *testing.T) {
	statuses := []RegisterStatus{
		RegisterStatusOK,
		RegisterStatusNotSupported,
		RegisterStatusInvalid,
		RegisterStatusNoMemory,
		RegisterStatusNotRunning,
	}

	for _, s := range statuses {
		t.Run(s.String(), func(t *testing.T) {
			if got := StatusOf(s.Error()); got != s {
				t.Errorf("StatusOf(%v.Error()) = %v, want %v", s, got, s)
			}
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	// Verify all sentinel errors are distinct
	errs := []error{
		ErrNotSupported,
		ErrInvalidParameter,
		ErrNoMemory,
		ErrNotRunning,
		ErrClosed,
	}

	for i, a := range errs {
		for j, b := range errs {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors %d and %d are not distinct: %v, %v", i, j, a, b)
			}
		}
	}
}
