// Package ui is the interactive terminal front end. Every fetch goes through
// an orchestrator; the model only decides which one to trigger and re-renders
// when a fetch completes.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
	"github.com/kailas-cloud/hadithview/internal/render"
	"github.com/kailas-cloud/hadithview/internal/usecase/browse"
	"github.com/kailas-cloud/hadithview/internal/usecase/detail"
	"github.com/kailas-cloud/hadithview/internal/usecase/search"
	"github.com/kailas-cloud/hadithview/internal/usecase/view"
)

// Screen is the active view.
type Screen int

// Screens.
const (
	SearchScreen Screen = iota
	BooksScreen
	BrowseScreen
	DetailScreen
)

// BookLister fetches the collection list for the books screen.
type BookLister interface {
	ListBooks(ctx context.Context) ([]hadith.Book, error)
}

// Deps are the collaborators of the model. All orchestrators share one API client.
type Deps struct {
	Search   *search.Orchestrator
	Browse   *browse.Orchestrator
	Detail   *detail.Orchestrator
	Books    BookLister
	Renderer *render.Renderer
	Logger   *zap.Logger
}

// fetchedMsg reports that the fetches of one screen finished. The machines have
// already applied or discarded the results.
type fetchedMsg struct {
	screen Screen
}

// Model is the bubbletea model.
type Model struct {
	ctx    context.Context
	deps   Deps
	books  *view.Machine[[]hadith.Book]
	input  textinput.Model
	vp     viewport.Model
	spin   spinner.Model
	help   help.Model
	keys   keyMap
	screen Screen
	back   Screen // screen to return to from detail
	sel    map[Screen]int
	width  int
	height int
}

// New creates the model. ctx bounds every fetch it starts.
func New(ctx context.Context, d Deps) Model {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	in := textinput.New()
	in.Placeholder = "Search hadiths (e.g. prayer, صلاة, নামাজ)"
	in.Prompt = "› "
	in.CharLimit = hadith.MaxQueryLength
	in.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	return Model{
		ctx:   ctx,
		deps:  d,
		books: view.NewMachine[[]hadith.Book]("ui.books", view.DescribeFailure("Loading books", ""), d.Logger),
		input: in,
		vp:    viewport.New(80, 20),
		spin:  s,
		help:  help.New(),
		keys:  keys,
		sel:   map[Screen]int{},
	}
}

// Init starts the cursor blink and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

// Screen returns the active screen.
func (m Model) Screen() Screen { return m.screen }

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		m.refresh()
		return m, nil

	case fetchedMsg:
		m.clampSelection()
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.loading() {
			m.refresh()
		}
		return m, cmd

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.input.Blur()
		m.screen = SearchScreen
		m.sel[SearchScreen] = 0
		cmd := m.fetch(SearchScreen, m.deps.Search.Submit(m.input.Value()))
		m.refresh()
		return m, cmd
	case tea.KeyEsc, tea.KeyTab:
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()

	case key.Matches(msg, m.keys.Focus):
		m.screen = SearchScreen
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Books):
		m.screen = BooksScreen
		if m.books.State().Status == view.Idle {
			cmd = m.fetch(BooksScreen, m.books.Trigger(m.deps.Books.ListBooks))
		}

	case key.Matches(msg, m.keys.Up):
		if m.sel[m.screen] > 0 {
			m.sel[m.screen]--
		}
		if m.screen == DetailScreen {
			m.vp.LineUp(1)
			return m, nil
		}

	case key.Matches(msg, m.keys.Down):
		if m.sel[m.screen] < m.rows()-1 {
			m.sel[m.screen]++
		}
		if m.screen == DetailScreen {
			m.vp.LineDown(1)
			return m, nil
		}

	case key.Matches(msg, m.keys.Open):
		cmd = m.open()

	case key.Matches(msg, m.keys.Back):
		m.goBack()

	case key.Matches(msg, m.keys.NextPage) && m.screen == BrowseScreen:
		cmd = m.fetch(BrowseScreen, m.deps.Browse.Next())
		m.sel[BrowseScreen] = 0

	case key.Matches(msg, m.keys.PrevPage) && m.screen == BrowseScreen:
		cmd = m.fetch(BrowseScreen, m.deps.Browse.Prev())
		m.sel[BrowseScreen] = 0

	case key.Matches(msg, m.keys.NextChap) && m.screen == BrowseScreen:
		cmd = m.stepChapter(1)

	case key.Matches(msg, m.keys.PrevChap) && m.screen == BrowseScreen:
		cmd = m.stepChapter(-1)

	case key.Matches(msg, m.keys.Reload):
		cmd = m.reload()
	}

	m.refresh()
	return m, cmd
}

// open acts on the selected row of the current screen.
func (m *Model) open() tea.Cmd {
	i := m.sel[m.screen]
	switch m.screen {
	case SearchScreen:
		st := m.deps.Search.State()
		if st.Status != view.Success || i >= len(st.Value.Outcome.Results) {
			return nil
		}
		return m.openDetail(st.Value.Outcome.Results[i].ID)
	case BooksScreen:
		st := m.books.State()
		if st.Status != view.Success || i >= len(st.Value) {
			return nil
		}
		m.screen = BrowseScreen
		m.sel[BrowseScreen] = 0
		return m.fetch(BrowseScreen, m.deps.Browse.Open(st.Value[i].ID)...)
	case BrowseScreen:
		st := m.deps.Browse.Hadiths()
		if st.Status != view.Success || i >= len(st.Value.Results) {
			return nil
		}
		return m.openDetail(st.Value.Results[i].ID)
	}
	return nil
}

func (m *Model) openDetail(id int) tea.Cmd {
	m.back = m.screen
	m.screen = DetailScreen
	m.vp.GotoTop()
	return m.fetch(DetailScreen, m.deps.Detail.Load(id))
}

func (m *Model) goBack() {
	switch m.screen {
	case DetailScreen:
		m.screen = m.back
	case BrowseScreen:
		m.screen = BooksScreen
	case BooksScreen:
		m.screen = SearchScreen
	}
}

// stepChapter moves the chapter filter through "all chapters" and each chapter in order.
func (m *Model) stepChapter(delta int) tea.Cmd {
	cs := m.deps.Browse.Chapters()
	if cs.Status != view.Success {
		return nil
	}
	ids := []int{0}
	for _, ch := range cs.Value.Chapters {
		ids = append(ids, ch.ID)
	}
	cur := 0
	for i, id := range ids {
		if id == m.deps.Browse.Position().ChapterID {
			cur = i
			break
		}
	}
	next := (cur + delta + len(ids)) % len(ids)
	m.sel[BrowseScreen] = 0
	return m.fetch(BrowseScreen, m.deps.Browse.FilterChapter(ids[next]))
}

func (m *Model) reload() tea.Cmd {
	switch m.screen {
	case SearchScreen:
		if q := m.deps.Search.Query(); q.Query != "" {
			return m.fetch(SearchScreen, m.deps.Search.SubmitQuery(q))
		}
	case BooksScreen:
		return m.fetch(BooksScreen, m.books.Trigger(m.deps.Books.ListBooks))
	case BrowseScreen:
		return m.fetch(BrowseScreen, m.deps.Browse.Reload()...)
	}
	return nil
}

// fetch wraps triggered fetches into a command. Nil fetches (no-op triggers) are dropped.
func (m *Model) fetch(screen Screen, fetches ...view.Fetch) tea.Cmd {
	var live []view.Fetch
	for _, f := range fetches {
		if f != nil {
			live = append(live, f)
		}
	}
	if len(live) == 0 {
		return nil
	}
	ctx := m.ctx
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		view.RunConcurrently(ctx, live...)
		return fetchedMsg{screen: screen}
	})
}

// rows is the number of selectable rows on the current screen.
func (m Model) rows() int {
	switch m.screen {
	case SearchScreen:
		if st := m.deps.Search.State(); st.Status == view.Success {
			return len(st.Value.Outcome.Results)
		}
	case BooksScreen:
		if st := m.books.State(); st.Status == view.Success {
			return len(st.Value)
		}
	case BrowseScreen:
		if st := m.deps.Browse.Hadiths(); st.Status == view.Success {
			return len(st.Value.Results)
		}
	}
	return 0
}

func (m *Model) clampSelection() {
	if n := m.rows(); m.sel[m.screen] >= n {
		m.sel[m.screen] = max(n-1, 0)
	}
}

func (m Model) loading() bool {
	switch m.screen {
	case SearchScreen:
		return m.deps.Search.State().Status == view.Loading
	case BooksScreen:
		return m.books.State().Status == view.Loading
	case BrowseScreen:
		return m.deps.Browse.Hadiths().Status == view.Loading || m.deps.Browse.Book().Status == view.Loading
	case DetailScreen:
		return m.deps.Detail.State().Status == view.Loading
	}
	return false
}

func (m *Model) resize() {
	reserved := 4 // input, status, help, gap
	if m.help.ShowAll {
		reserved += 3
	}
	m.vp.Width = m.width
	m.vp.Height = max(m.height-reserved, 1)
}

// refresh re-renders the active screen into the viewport.
func (m *Model) refresh() {
	m.vp.SetContent(m.content())
}

func (m Model) content() string {
	r := m.deps.Renderer
	switch m.screen {
	case SearchScreen:
		return r.Search(m.deps.Search.State(), m.sel[SearchScreen])
	case BooksScreen:
		st := m.books.State()
		switch st.Status {
		case view.Loading:
			return render.Loading
		case view.Failure:
			return st.Message
		}
		return r.Books(st.Value, m.sel[BooksScreen])
	case BrowseScreen:
		return r.Browse(m.deps.Browse, m.sel[BrowseScreen])
	case DetailScreen:
		return r.Detail(m.deps.Detail.State())
	}
	return ""
}

// View renders the UI.
func (m Model) View() string {
	status := m.statusLine()
	if m.loading() {
		status = m.spin.View() + " " + status
	}
	return strings.Join([]string{
		m.input.View(),
		m.vp.View(),
		status,
		m.help.View(m.keys),
	}, "\n")
}

func (m Model) statusLine() string {
	switch m.screen {
	case SearchScreen:
		if q := m.deps.Search.Query(); q.Query != "" {
			return fmt.Sprintf("search: %q", q.Query)
		}
		return "search"
	case BooksScreen:
		return "books"
	case BrowseScreen:
		pos := m.deps.Browse.Position()
		return fmt.Sprintf("book %d · page %d", pos.BookID, pos.Page)
	case DetailScreen:
		return "hadith"
	}
	return ""
}
