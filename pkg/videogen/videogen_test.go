package videogen

import (
	"errors"
	"testing"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"valid", Request{Script: "hello", Duration: 30}, false},
		{"empty script", Request{Duration: 30}, true},
		{"over cap", Request{Script: "hello", Duration: 61}, true},
		{"at cap", Request{Script: "hello", Duration: 60}, false},
		{"zero duration", Request{Script: "hello"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &RequestError{Provider: "did", Message: "bad script", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("errors.Is(err, inner) = false; want true")
	}
	if got := err.Error(); got == "" {
		t.Fatal("Error() is empty")
	}
}
