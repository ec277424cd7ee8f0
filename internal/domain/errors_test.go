package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestRequestError_Is(t *testing.T) {
	notFound := NewRequestError("get hadith", http.StatusNotFound, "Hadith 999 not found")
	serverErr := NewRequestError("search", http.StatusInternalServerError, "")

	if !errors.Is(notFound, ErrNotFound) {
		t.Error("404 should match ErrNotFound")
	}
	if !errors.Is(notFound, ErrRequestFailed) {
		t.Error("404 should match ErrRequestFailed")
	}
	if errors.Is(serverErr, ErrNotFound) {
		t.Error("500 must not match ErrNotFound")
	}
	if !errors.Is(serverErr, ErrRequestFailed) {
		t.Error("500 should match ErrRequestFailed")
	}
	if errors.Is(serverErr, ErrTransport) || errors.Is(serverErr, ErrDecode) {
		t.Error("request error leaked into other kinds")
	}
}

func TestRequestError_Message(t *testing.T) {
	err := NewRequestError("get hadith", http.StatusNotFound, "Hadith 999 not found")
	want := "get hadith: request failed: 404 Not Found: Hadith 999 not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var re *RequestError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &re) {
		t.Fatal("errors.As failed through wrapping")
	}
	if re.Status != "Not Found" {
		t.Errorf("Status = %q, want %q", re.Status, "Not Found")
	}
}

func TestTransportError_UnwrapsCause(t *testing.T) {
	err := &TransportError{Op: "list books", Err: context.Canceled}

	if !errors.Is(err, ErrTransport) {
		t.Error("expected ErrTransport")
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("expected cause to be reachable")
	}
	if !strings.Contains(err.Error(), "list books") {
		t.Errorf("message %q lacks op", err.Error())
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, ""},
		{"not found", NewRequestError("op", 404, ""), KindNotFound},
		{"bad request", NewRequestError("op", 422, ""), KindRequest},
		{"decode", &DecodeError{Op: "op", Err: errors.New("eof")}, KindDecode},
		{"transport", &TransportError{Op: "op", Err: errors.New("refused")}, KindTransport},
		{"wrapped not found", fmt.Errorf("load: %w", NewRequestError("op", 404, "")), KindNotFound},
		{"other", errors.New("boom"), KindUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("KindOf() = %q, want %q", got, tc.want)
			}
		})
	}
}
