// Package render composes terminal text for the search, browse and detail views.
// It only reads orchestrator state; it never triggers fetches.
package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/kailas-cloud/hadithview/internal/domain/grade"
	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
)

// Palette
var (
	colorTitle   = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorError   = lipgloss.Color("#DC2626")
	colorAccent  = lipgloss.Color("#0EA5E9")
	colorCurrent = lipgloss.Color("#F9FAFB")
)

// Options configure a Renderer.
type Options struct {
	Lang     hadith.Lang // display language; empty means the English-then-Arabic rule
	Truncate int         // graphemes per result body; <= 0 disables truncation
	Width    int         // wrap and RTL alignment width; 0 means unbounded
}

// Renderer is safe for concurrent use: it holds styles only.
type Renderer struct {
	opts Options
	lg   *lipgloss.Renderer

	title    lipgloss.Style
	muted    lipgloss.Style
	errStyle lipgloss.Style
	accent   lipgloss.Style
	current  lipgloss.Style
	selected lipgloss.Style
	heading  lipgloss.Style
}

// New creates a Renderer whose color profile is detected from w.
// A non-terminal writer (pipe, file, io.Discard) yields plain text.
func New(w io.Writer, opts Options) *Renderer {
	lg := lipgloss.NewRenderer(w)
	return &Renderer{
		opts:     opts,
		lg:       lg,
		title:    lg.NewStyle().Bold(true).Foreground(colorTitle),
		muted:    lg.NewStyle().Foreground(colorMuted),
		errStyle: lg.NewStyle().Foreground(colorError),
		accent:   lg.NewStyle().Foreground(colorAccent),
		current:  lg.NewStyle().Bold(true).Foreground(colorCurrent).Background(colorTitle),
		selected: lg.NewStyle().Bold(true).Foreground(colorAccent),
		heading:  lg.NewStyle().Bold(true).Underline(true),
	}
}

// Lang returns the display language.
func (r *Renderer) Lang() hadith.Lang { return r.opts.Lang }

// GradeBadge renders label on the category's fill color, led by its indicator dot.
func (r *Renderer) GradeBadge(label string, c grade.Category) string {
	st := grade.StyleFor(c)
	dot := r.lg.NewStyle().Foreground(lipgloss.Color(st.Indicator)).Render("●")
	text := r.lg.NewStyle().
		Foreground(lipgloss.Color(st.Foreground)).
		Background(lipgloss.Color(st.Fill)).
		Padding(0, 1).
		Render(label)
	return dot + " " + text
}

// body lays out display text, right-aligning right-to-left scripts.
func (r *Renderer) body(text string, rtl bool, indent int) string {
	st := r.lg.NewStyle().PaddingLeft(indent)
	if r.opts.Width > 0 {
		st = st.Width(r.opts.Width)
		if rtl {
			st = st.Align(lipgloss.Right)
		}
	}
	return st.Render(text)
}

var langNames = map[hadith.Lang]string{
	hadith.LangEnglish: "English",
	hadith.LangArabic:  "Arabic",
	hadith.LangBengali: "Bengali",
	hadith.LangUrdu:    "Urdu",
}
