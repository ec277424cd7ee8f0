package detail

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/hadithview/internal/domain"
	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
	"github.com/kailas-cloud/hadithview/internal/usecase/view"
)

// --- Mocks ---

type mockGetter struct {
	getFn func(ctx context.Context, id int) (hadith.Detail, error)
}

func (m *mockGetter) GetHadith(ctx context.Context, id int) (hadith.Detail, error) {
	return m.getFn(ctx, id)
}

// --- Tests ---

func TestRun_Success(t *testing.T) {
	o := New(&mockGetter{getFn: func(_ context.Context, id int) (hadith.Detail, error) {
		return hadith.Detail{Record: hadith.Record{ID: id, ArabicText: "نص"}, ChapterTitle: "Revelation"}, nil
	}}, nil)

	s := o.Run(context.Background(), 1)
	if s.Status != view.Success || s.Value.ID != 1 || s.Value.ChapterTitle != "Revelation" {
		t.Errorf("state = %+v", s)
	}
}

func TestRun_NotFound(t *testing.T) {
	o := New(&mockGetter{getFn: func(context.Context, int) (hadith.Detail, error) {
		return hadith.Detail{}, domain.NewRequestError("get_hadith", 404, "Hadith 999 not found")
	}}, nil)

	s := o.Run(context.Background(), 999)
	if !s.NotFound() {
		t.Fatalf("expected not-found state, got %+v", s)
	}
	if s.Message != NotFoundMessage {
		t.Errorf("message = %q", s.Message)
	}
}

func TestRun_GenericFailureIsNotNotFound(t *testing.T) {
	o := New(&mockGetter{getFn: func(context.Context, int) (hadith.Detail, error) {
		return hadith.Detail{}, &domain.DecodeError{Op: "get_hadith", Err: errors.New("eof")}
	}}, nil)

	s := o.Run(context.Background(), 5)
	if s.Status != view.Failure || s.NotFound() {
		t.Errorf("state = %+v", s)
	}
}

func TestLoad_InvalidID(t *testing.T) {
	o := New(&mockGetter{getFn: func(context.Context, int) (hadith.Detail, error) {
		t.Fatal("backend must not be called")
		return hadith.Detail{}, nil
	}}, nil)

	if f := o.Load(0); f != nil {
		t.Error("expected nil fetch")
	}
	if o.State().Status != view.Idle {
		t.Errorf("status = %q", o.State().Status)
	}
}
