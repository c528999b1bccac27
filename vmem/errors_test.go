package vmem

import (
	"errors"
	"fmt"
	"testing"
)

func TestSimError(t *testing.T) {
	err := NewSimError(
		ErrCodeConfiguration,
		"NewSimulator",
		"bad frames",
		nil,
	)

	if err.Code != ErrCodeConfiguration {
		t.Errorf("Expected error code %d, got %d", ErrCodeConfiguration, err.Code)
	}

	if err.Op != "NewSimulator" {
		t.Errorf("Expected op 'NewSimulator', got '%s'", err.Op)
	}

	expected := "NewSimulator: bad frames"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

func TestSimErrorWithUnderlying(t *testing.T) {
	underlying := fmt.Errorf("no such file")
	err := ErrTraceOpen("trace.Open", "missing.trace", underlying)

	if errors.Unwrap(err) != underlying {
		t.Error("Unwrap did not return underlying error")
	}

	expected := "trace.Open: cannot open trace missing.trace: no such file"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name string
		err  *SimError
		code ErrorCode
	}{
		{"InvalidFrames", ErrInvalidFrames("op", 0), ErrCodeConfiguration},
		{"UnknownPolicy", ErrUnknownPolicy("op", "vms"), ErrCodeConfiguration},
		{"MalformedRecord", ErrMalformedRecord("op", 3, "bad"), ErrCodeTraceFormat},
		{"TraceOpen", ErrTraceOpen("op", "x", nil), ErrCodeTraceUnavailable},
		{"Precondition", ErrPrecondition("op", "full"), ErrCodePolicyPrecondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.Error() == "" {
				t.Error("Error message should not be empty")
			}
		})
	}
}

func TestErrorCodeThroughWrapping(t *testing.T) {
	base := ErrMalformedRecord("trace.ParseRecord", 7, "invalid access kind")
	wrapped := fmt.Errorf("trace record 7: %w", base)

	if !IsErrorCode(wrapped, ErrCodeTraceFormat) {
		t.Error("Expected wrapped error to carry trace format code")
	}
	if GetErrorCode(fmt.Errorf("plain")) != ErrCodeUnknown {
		t.Error("Expected unknown code for plain error")
	}
	if GetErrorCode(nil) != ErrCodeUnknown {
		t.Error("Expected unknown code for nil")
	}
	if !errors.Is(wrapped, ErrTraceFormat) {
		t.Error("errors.Is should match on code")
	}
	if errors.Is(wrapped, ErrConfiguration) {
		t.Error("errors.Is should not match a different code")
	}
}
