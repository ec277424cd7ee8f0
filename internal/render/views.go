package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/hadithview/internal/domain/display"
	"github.com/kailas-cloud/hadithview/internal/domain/grade"
	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
	"github.com/kailas-cloud/hadithview/internal/domain/pagination"
	"github.com/kailas-cloud/hadithview/internal/usecase/browse"
	"github.com/kailas-cloud/hadithview/internal/usecase/health"
	"github.com/kailas-cloud/hadithview/internal/usecase/search"
	"github.com/kailas-cloud/hadithview/internal/usecase/view"
)

// Empty-state and prompt texts.
const (
	SearchPrompt  = "Type a query to search the collections."
	NoResults     = "No results found."
	NoHadiths     = "No hadiths in this selection."
	NoBooks       = "No books available."
	SearchLoading = "Searching…"
	Loading       = "Loading…"
)

// ResultRow renders one hadith summary: a header with book, number and grade,
// then the truncated body. Browse rows carry no book title.
func (r *Renderer) ResultRow(s hadith.Summary, selected bool) string {
	f := display.Format(s.Record, r.opts.Lang, r.opts.Truncate)

	marker := "  "
	head := r.muted
	if selected {
		marker = r.selected.Render("▸ ")
		head = r.selected
	}

	var ref string
	if title := display.BookTitle(s, r.lang()); title != "" {
		ref = fmt.Sprintf("%s #%d", title, s.Number)
	} else {
		ref = "Hadith #" + strconv.Itoa(s.Number)
	}

	line := marker + head.Render(ref) + "  " + r.GradeBadge(display.GradeLabel(s, r.lang()), f.Grade)
	if s.Score != nil {
		line += r.muted.Render(fmt.Sprintf("  %.3f", *s.Score))
	}
	if f.Text == "" {
		return line
	}
	return line + "\n" + r.body(f.Text, f.RTL, 2)
}

// Search renders the search view for st. selected is the highlighted row (-1 for none).
func (r *Renderer) Search(st view.State[search.Result], selected int) string {
	switch st.Status {
	case view.Idle:
		return r.muted.Render(SearchPrompt)
	case view.Loading:
		return r.muted.Render(SearchLoading)
	case view.Failure:
		return r.errStyle.Render(st.Message)
	}

	res := st.Value
	if len(res.Outcome.Results) == 0 {
		return r.muted.Render(NoResults)
	}

	lines := []string{r.title.Render(res.CountLabel())}
	if hint := res.Hint(); hint != "" {
		lines = append(lines, r.accent.Render(hint))
	}
	lines = append(lines, "")
	for i, s := range res.Outcome.Results {
		lines = append(lines, r.ResultRow(s, i == selected))
	}
	return strings.Join(lines, "\n")
}

// Browse renders the browse view. Book metadata, chapters and the hadith list
// fail independently, so each section reports its own state.
func (r *Renderer) Browse(o *browse.Orchestrator, selected int) string {
	var sections []string

	switch bs := o.Book(); bs.Status {
	case view.Loading:
		sections = append(sections, r.muted.Render(Loading))
	case view.Failure:
		sections = append(sections, r.errStyle.Render(bs.Message))
	case view.Success:
		sections = append(sections, r.BookHeader(bs.Value))
	}

	pos := o.Position()
	if cs := o.Chapters(); cs.Status == view.Success && pos.ChapterID != 0 {
		for _, ch := range cs.Value.Chapters {
			if ch.ID == pos.ChapterID {
				sections = append(sections, r.accent.Render("Chapter: "+ch.Title(r.lang())))
				break
			}
		}
	} else if cs.Status == view.Failure {
		sections = append(sections, r.errStyle.Render(cs.Message))
	}

	switch hs := o.Hadiths(); hs.Status {
	case view.Loading:
		sections = append(sections, r.muted.Render(Loading))
	case view.Failure:
		sections = append(sections, r.errStyle.Render(hs.Message))
	case view.Success:
		p := hs.Value
		if len(p.Results) == 0 {
			sections = append(sections, r.muted.Render(NoHadiths))
			break
		}
		rows := make([]string, len(p.Results))
		for i, s := range p.Results {
			rows[i] = r.ResultRow(s, i == selected)
		}
		sections = append(sections, strings.Join(rows, "\n"))
		if caption := o.Caption(); caption != "" {
			sections = append(sections, r.muted.Render(caption))
		}
		if pager := r.Pager(p.Page, p.Pages); pager != "" {
			sections = append(sections, pager)
		}
	}
	return strings.Join(sections, "\n\n")
}

// Pager renders "‹ Prev  1 … 4 [5] 6 … 10  Next ›", or "" when one page suffices.
func (r *Renderer) Pager(current, total int) string {
	window, ok := pagination.Window(current, total)
	if !ok {
		return ""
	}
	nav := pagination.Controls(current, total)

	parts := []string{r.navLabel("‹ Prev", nav.Prev.Enabled)}
	for _, e := range window {
		switch {
		case e.Ellipsis:
			parts = append(parts, r.muted.Render(e.Label()))
		case e.Page == pagination.Clamp(current, total):
			parts = append(parts, r.current.Render("["+e.Label()+"]"))
		default:
			parts = append(parts, e.Label())
		}
	}
	parts = append(parts, r.navLabel("Next ›", nav.Next.Enabled))
	return strings.Join(parts, " ")
}

func (r *Renderer) navLabel(label string, enabled bool) string {
	if !enabled {
		return r.muted.Faint(true).Render(label)
	}
	return r.accent.Render(label)
}

// BookHeader renders a book's title, Arabic title, description and size.
func (r *Renderer) BookHeader(b hadith.Book) string {
	lines := []string{r.title.Render(b.Title(r.lang()))}
	if b.ArabicTitle != nil && *b.ArabicTitle != "" && r.lang() != hadith.LangArabic {
		lines = append(lines, r.body(*b.ArabicTitle, true, 0))
	}
	if b.Description != nil && *b.Description != "" {
		lines = append(lines, r.muted.Render(*b.Description))
	}
	lines = append(lines, r.muted.Render(plural(b.HadithCount, "hadith")))
	return strings.Join(lines, "\n")
}

// Books renders the collection list, one book per line.
func (r *Renderer) Books(books []hadith.Book, selected int) string {
	if len(books) == 0 {
		return r.muted.Render(NoBooks)
	}
	lines := make([]string, len(books))
	for i, b := range books {
		marker, name := "  ", b.Title(r.lang())
		if i == selected {
			marker, name = r.selected.Render("▸ "), r.selected.Render(name)
		}
		lines[i] = fmt.Sprintf("%s%3d  %s  %s", marker, b.ID, name, r.muted.Render(plural(b.HadithCount, "hadith")))
	}
	return strings.Join(lines, "\n")
}

// Chapters renders a chapter list in order_index order.
func (r *Renderer) Chapters(cl hadith.ChapterList) string {
	if len(cl.Chapters) == 0 {
		return r.muted.Render("No chapters.")
	}
	lines := make([]string, len(cl.Chapters))
	for i, ch := range cl.Chapters {
		title := ch.Title(r.lang())
		if title == "" {
			title = "Chapter " + strconv.Itoa(ch.OrderIndex)
		}
		lines[i] = fmt.Sprintf("  %5d  %s  %s", ch.ID, title, r.muted.Render(plural(ch.HadithCount, "hadith")))
	}
	return strings.Join(lines, "\n")
}

// Detail renders a single hadith with every available translation and narrator.
func (r *Renderer) Detail(st view.State[hadith.Detail]) string {
	switch st.Status {
	case view.Idle:
		return ""
	case view.Loading:
		return r.muted.Render(Loading)
	case view.Failure:
		return r.errStyle.Render(st.Message)
	}

	d := st.Value
	c := grade.Classify(d.GradeText)
	label := c.Label()
	if d.GradeText != nil && *d.GradeText != "" {
		label = *d.GradeText
	}

	lines := []string{
		r.title.Render(fmt.Sprintf("%s · Hadith %d", d.BookTitle, d.Number)) + "  " + r.GradeBadge(label, c),
	}
	if d.ChapterTitle != "" {
		lines = append(lines, r.muted.Render(d.ChapterTitle))
	}

	for _, l := range r.lang().Priority() {
		text := d.Text(l)
		if text == nil || *text == "" {
			continue
		}
		lines = append(lines, "", r.heading.Render(langNames[l]))
		if n := d.Narrator(l); n != nil && *n != "" {
			lines = append(lines, r.body(r.muted.Render(*n), l.RightToLeft(), 0))
		}
		lines = append(lines, r.body(*text, l.RightToLeft(), 0))
	}
	return strings.Join(lines, "\n")
}

// Health renders a backend health report.
func (r *Renderer) Health(rep health.Report) string {
	status := string(rep.Status)
	if rep.Status == health.Healthy {
		status = r.accent.Render(status)
	} else {
		status = r.errStyle.Render(status)
	}

	lines := []string{"backend: " + status}
	for _, name := range []string{"api", "database"} {
		if v, ok := rep.Checks[name]; ok {
			lines = append(lines, fmt.Sprintf("  %-9s %s", name+":", v))
		}
	}
	if rep.Status != health.Unhealthy {
		lines = append(lines, fmt.Sprintf("  %-9s %d", "hadiths:", rep.TotalHadiths))
	}
	if rep.Error != "" {
		lines = append(lines, r.errStyle.Render("  error: "+rep.Error))
	}
	return strings.Join(lines, "\n")
}

// lang is the language used for titles and detail ordering; it never is empty.
func (r *Renderer) lang() hadith.Lang {
	if r.opts.Lang == "" {
		return hadith.LangEnglish
	}
	return r.opts.Lang
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
