package services_test

import (
	"errors"
	"strings"
	"testing"

	"pmvhaven/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransport, "catalog", "search", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"catalog", "search", "request failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := services.Wrap(services.ErrNoMatch, "", "", "", nil)
	if err.Error() != "no match: service failure" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"input", services.Wrap(services.ErrInvalidInput, "dispatch", "", "empty stdin", nil), "input"},
		{"transport", services.Wrap(services.ErrTransport, "catalog", "get", "", errors.New("dial")), "transport"},
		{"bad response", services.Wrap(services.ErrBadResponse, "catalog", "decode", "", nil), "bad_response"},
		{"no match", services.Wrap(services.ErrNoMatch, "resolve", "", "", nil), "no_match"},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "", "", nil), "configuration"},
		{"plain", errors.New("other"), "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.Classify(tt.err); got != tt.want {
				t.Fatalf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsSoft(t *testing.T) {
	if !services.IsSoft(services.Wrap(services.ErrBadResponse, "catalog", "", "non-JSON", nil)) {
		t.Fatal("expected bad response to be soft")
	}
	if services.IsSoft(services.Wrap(services.ErrTransport, "catalog", "", "", nil)) {
		t.Fatal("expected transport failure to be fatal")
	}
	if services.IsSoft(errors.New("other")) {
		t.Fatal("expected unclassified error to be fatal")
	}
}
