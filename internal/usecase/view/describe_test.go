package view

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/hadithview/internal/domain"
)

func TestDescribeFailure(t *testing.T) {
	d := DescribeFailure("Search", "")
	nf := DescribeFailure("Loading hadith", "Hadith not found.")

	tests := []struct {
		name string
		desc Describer
		err  error
		want string
	}{
		{"request", d, domain.NewRequestError("search", 500, "Search failed: db down"),
			"Search failed: server returned 500 Internal Server Error (Search failed: db down)."},
		{"request no detail", d, domain.NewRequestError("search", 422, ""),
			"Search failed: server returned 422 Unprocessable Entity."},
		{"transport", d, &domain.TransportError{Op: "search", Err: errors.New("refused")},
			"Search failed: the server could not be reached."},
		{"decode", d, &domain.DecodeError{Op: "search", Err: errors.New("eof")},
			"Search failed: unexpected response from the server."},
		{"not found default", d, domain.NewRequestError("search", 404, ""), "Search failed: not found."},
		{"not found override", nf, domain.NewRequestError("get", 404, ""), "Hadith not found."},
		{"unknown", d, errors.New("x"), "Search failed."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.desc(tc.err); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
