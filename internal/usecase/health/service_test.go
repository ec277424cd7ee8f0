package health

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/hadithview/internal/domain"
	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
)

// --- Mocks ---

type mockProber struct {
	h   hadith.Health
	err error
}

func (m *mockProber) Health(_ context.Context) (hadith.Health, error) { return m.h, m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockProber{h: hadith.Health{Status: "healthy", Database: "connected", TotalHadiths: 45}}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["api"] != CheckOK {
		t.Errorf("expected api %q, got %q", CheckOK, r.Checks["api"])
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.TotalHadiths != 45 {
		t.Errorf("expected 45 hadiths, got %d", r.TotalHadiths)
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(&mockProber{h: hadith.Health{Status: "unhealthy", Database: "error", Error: "conn refused"}}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.Error != "conn refused" {
		t.Errorf("expected backend error to be kept, got %q", r.Error)
	}
}

func TestCheck_Unreachable(t *testing.T) {
	svc := New(&mockProber{err: &domain.TransportError{Op: "health", Err: errors.New("refused")}}, nil)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["api"] != CheckError {
		t.Error("expected api error")
	}
	if _, ok := r.Checks["database"]; ok {
		t.Error("database check should be absent when the api is unreachable")
	}
}
