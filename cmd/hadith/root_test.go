package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hadithview/internal/repository/catalog"
	chiTransport "github.com/kailas-cloud/hadithview/internal/transport/chi"
	"github.com/kailas-cloud/hadithview/internal/usecase/detail"
	"github.com/kailas-cloud/hadithview/internal/version"
)

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	cat, err := catalog.Load("../../config/fixtures.yaml")
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	h, _, err := stubHandler(context.Background(), cat, zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("stubHandler: %v", err)
	}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENV", "local")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if srv != nil {
		args = append([]string{"--base-url", srv.URL + chiTransport.APIPrefix}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, nil, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, version.String()) {
		t.Errorf("expected version line, got %q", out)
	}
}

func TestBooks(t *testing.T) {
	srv := newStubServer(t)
	out, err := execute(t, srv, "books")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Sahih al-Bukhari", "6 hadiths"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSearch(t *testing.T) {
	srv := newStubServer(t)
	out, err := execute(t, srv, "search", "prayer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"result", "Also searched: salah"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSearch_NoQuery(t *testing.T) {
	srv := newStubServer(t)
	if _, err := execute(t, srv, "search"); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSearch_BadLimit(t *testing.T) {
	srv := newStubServer(t)
	if _, err := execute(t, srv, "search", "--limit", "500", "prayer"); err == nil {
		t.Fatal("expected error for limit above maximum")
	}
}

func TestHadith_NotFound(t *testing.T) {
	srv := newStubServer(t)
	out, err := execute(t, srv, "hadith", "999")
	if !errors.Is(err, errViewFailed) {
		t.Fatalf("expected errViewFailed, got %v", err)
	}
	if !strings.Contains(out, detail.NotFoundMessage) {
		t.Errorf("expected %q, got:\n%s", detail.NotFoundMessage, out)
	}
}

func TestHadith_InvalidID(t *testing.T) {
	if _, err := execute(t, nil, "hadith", "abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestBook_PageClamped(t *testing.T) {
	srv := newStubServer(t)
	out, err := execute(t, srv, "book", "1", "--page", "9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Sahih al-Bukhari") {
		t.Errorf("expected book header, got:\n%s", out)
	}
}

func TestBook_Chapters(t *testing.T) {
	srv := newStubServer(t)
	out, err := execute(t, srv, "book", "1", "--chapters")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Revelation", "Prayers (Salat)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestHealth(t *testing.T) {
	srv := newStubServer(t)
	out, err := execute(t, srv, "health")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "backend: ok") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestHealth_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	if _, err := execute(t, srv, "health"); err == nil {
		t.Fatal("expected error when backend is down")
	}
}

// --- Mocks ---

type brokenCatalog struct {
	*catalog.Catalog
	countErr error
}

func (c brokenCatalog) Count(context.Context) (int, error) { return 0, c.countErr }

func TestStubHandler_CountFailure(t *testing.T) {
	cat, err := catalog.Load("../../config/fixtures.yaml")
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	cause := errors.New("fixtures unreadable")

	h, _, err := stubHandler(context.Background(), brokenCatalog{Catalog: cat, countErr: cause}, zap.NewNop(), nil)
	if !errors.Is(err, cause) {
		t.Fatalf("expected count error, got %v", err)
	}
	if h != nil {
		t.Error("expected no handler on failure")
	}
}

func TestStubHandler_AuthAndTotal(t *testing.T) {
	cat, err := catalog.Load("../../config/fixtures.yaml")
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	h, total, err := stubHandler(context.Background(), cat, zap.NewNop(), []string{"k1"})
	if err != nil {
		t.Fatalf("stubHandler: %v", err)
	}
	if total != 12 {
		t.Errorf("total = %d, want 12", total)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, chiTransport.APIPrefix+"/books", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID on rejected requests")
	}
}
