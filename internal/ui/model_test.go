package ui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kailas-cloud/hadithview/internal/domain"
	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
	"github.com/kailas-cloud/hadithview/internal/render"
	"github.com/kailas-cloud/hadithview/internal/usecase/browse"
	"github.com/kailas-cloud/hadithview/internal/usecase/detail"
	"github.com/kailas-cloud/hadithview/internal/usecase/search"
	"github.com/kailas-cloud/hadithview/internal/usecase/view"
)

// --- Mocks ---

type mockAPI struct {
	searches []hadith.SearchQuery
}

func (m *mockAPI) Search(_ context.Context, q hadith.SearchQuery) (hadith.SearchOutcome, error) {
	m.searches = append(m.searches, q)
	return hadith.SearchOutcome{
		Query: q.Query,
		Count: 2,
		Results: []hadith.Summary{
			{Record: hadith.Record{ID: 10, Number: 1, ArabicText: "أ"}, BookTitle: "Sahih Muslim"},
			{Record: hadith.Record{ID: 11, Number: 2, ArabicText: "ب"}, BookTitle: "Sahih Muslim"},
		},
	}, nil
}

func (m *mockAPI) GetHadith(_ context.Context, id int) (hadith.Detail, error) {
	if id == 11 {
		return hadith.Detail{}, domain.NewRequestError("get hadith", 404, "Hadith 11 not found")
	}
	return hadith.Detail{Record: hadith.Record{ID: id, Number: 1, ArabicText: "أ"}, BookTitle: "Sahih Muslim"}, nil
}

func (m *mockAPI) ListBooks(context.Context) ([]hadith.Book, error) {
	return []hadith.Book{{ID: 1, EnglishTitle: "Sahih al-Bukhari"}, {ID: 2, EnglishTitle: "Sahih Muslim"}}, nil
}

func (m *mockAPI) GetBook(_ context.Context, id int) (hadith.Book, error) {
	return hadith.Book{ID: id, EnglishTitle: "Sahih Muslim", HadithCount: 30}, nil
}

func (m *mockAPI) ListChapters(_ context.Context, bookID int) (hadith.ChapterList, error) {
	return hadith.ChapterList{BookID: bookID, Chapters: []hadith.Chapter{{ID: 201}, {ID: 202}}}, nil
}

func (m *mockAPI) ListHadithsByBook(
	_ context.Context, _ int, q hadith.ListQuery,
) (hadith.Page[hadith.Summary], error) {
	return hadith.Page[hadith.Summary]{
		Results:  []hadith.Summary{{Record: hadith.Record{ID: 100 + q.Page, Number: q.Page, ArabicText: "ج"}}},
		Total:    30,
		Page:     q.Page,
		PageSize: 20,
		Pages:    2,
	}, nil
}

// --- Helpers ---

func newModel(api *mockAPI) Model {
	d := Deps{
		Search:   search.New(api, nil),
		Browse:   browse.New(api, nil),
		Detail:   detail.New(api, nil),
		Books:    api,
		Renderer: render.New(io.Discard, render.Options{}),
	}
	m := New(context.Background(), d)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

// drain runs cmd and feeds fetch completions back into the model.
// Spinner and blink messages are dropped to keep the loop finite.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		c := pending[0]
		pending = pending[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			pending = append(pending, msg...)
		case fetchedMsg:
			next, _ := m.Update(msg)
			m = next.(Model)
		}
	}
	return m
}

func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(k)
	return drain(t, next.(Model), cmd)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var enter = tea.KeyMsg{Type: tea.KeyEnter}
var esc = tea.KeyMsg{Type: tea.KeyEsc}

// --- Tests ---

func TestSearchThenOpenDetail(t *testing.T) {
	api := &mockAPI{}
	m := newModel(api)

	m.input.SetValue("prayer")
	m = press(t, m, enter)

	if len(api.searches) != 1 || api.searches[0].Query != "prayer" {
		t.Fatalf("searches = %+v", api.searches)
	}
	if !strings.Contains(m.content(), "2 results") {
		t.Errorf("content = %q", m.content())
	}

	m = press(t, m, runes("j"))
	m = press(t, m, enter)

	if m.Screen() != DetailScreen {
		t.Fatalf("screen = %d, want detail", m.Screen())
	}
	// второй результат отдаёт 404
	if got := m.content(); got != detail.NotFoundMessage {
		t.Errorf("content = %q, want not-found message", got)
	}

	m = press(t, m, esc)
	if m.Screen() != SearchScreen {
		t.Errorf("esc from detail: screen = %d", m.Screen())
	}
}

func TestBlankSearchDoesNotFetch(t *testing.T) {
	api := &mockAPI{}
	m := newModel(api)

	m.input.SetValue("   ")
	m = press(t, m, enter)

	if len(api.searches) != 0 {
		t.Errorf("blank query reached the backend: %+v", api.searches)
	}
	if m.deps.Search.State().Status != view.Idle {
		t.Errorf("status = %q", m.deps.Search.State().Status)
	}
}

func TestBrowsePaging(t *testing.T) {
	api := &mockAPI{}
	m := newModel(api)
	m = press(t, m, esc) // blur the input

	m = press(t, m, runes("b"))
	if m.Screen() != BooksScreen || !strings.Contains(m.content(), "Sahih Muslim") {
		t.Fatalf("books screen: %q", m.content())
	}

	m = press(t, m, runes("j"))
	m = press(t, m, enter)
	if m.Screen() != BrowseScreen {
		t.Fatalf("screen = %d, want browse", m.Screen())
	}
	if pos := m.deps.Browse.Position(); pos.BookID != 2 || pos.Page != 1 {
		t.Fatalf("position = %+v", pos)
	}

	m = press(t, m, runes("n"))
	if pos := m.deps.Browse.Position(); pos.Page != 2 {
		t.Errorf("after next: page = %d", pos.Page)
	}
	// последняя страница, дальше некуда
	m = press(t, m, runes("n"))
	if pos := m.deps.Browse.Position(); pos.Page != 2 {
		t.Errorf("next past the end: page = %d", pos.Page)
	}

	m = press(t, m, runes("]"))
	if pos := m.deps.Browse.Position(); pos.ChapterID != 201 || pos.Page != 1 {
		t.Errorf("after chapter step: %+v", pos)
	}
	m = press(t, m, runes("["))
	if pos := m.deps.Browse.Position(); pos.ChapterID != 0 {
		t.Errorf("back to all chapters: %+v", pos)
	}

	m = press(t, m, esc)
	if m.Screen() != BooksScreen {
		t.Errorf("esc from browse: screen = %d", m.Screen())
	}
}

func TestView_ShowsInputAndStatus(t *testing.T) {
	m := newModel(&mockAPI{})
	out := m.View()
	if !strings.Contains(out, "›") || !strings.Contains(out, "search") {
		t.Errorf("View() = %q", out)
	}
}

func TestQuit(t *testing.T) {
	m := newModel(&mockAPI{})
	m = press(t, m, esc)

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
