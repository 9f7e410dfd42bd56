// ABOUTME: Terminal renderer for manager snapshots, stats and journal entries
// ABOUTME: Colors come from fatih/color, boxes from lipgloss

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// ruleWidth matches the width of banner boxes.
const ruleWidth = 67

// Tone selects a palette entry.
type Tone int

const (
	Plain Tone = iota
	Bold
	Cyan
	Green
	Yellow
	Red
	Magenta
)

var palette = map[Tone]*color.Color{
	Bold:    color.New(color.Bold),
	Cyan:    color.New(color.FgHiCyan),
	Green:   color.New(color.FgHiGreen),
	Yellow:  color.New(color.FgHiYellow),
	Red:     color.New(color.FgHiRed),
	Magenta: color.New(color.FgHiMagenta),
}

// Paint colors s with tone. Plain and unknown tones return s unchanged.
func Paint(tone Tone, s string) string {
	c, ok := palette[tone]
	if !ok {
		return s
	}
	return c.Sprint(s)
}

// Renderer writes formatted output to one writer. It is not safe for
// concurrent use.
type Renderer struct {
	w     io.Writer
	lg    *lipgloss.Renderer
	clear bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClearScreen makes Clear emit the ANSI clear sequence. Off by
// default so piped output stays clean.
func WithClearScreen(enabled bool) Option {
	return func(r *Renderer) {
		r.clear = enabled
	}
}

// New creates a renderer writing to w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		w:  w,
		lg: lipgloss.NewRenderer(w),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Writer returns the destination writer.
func (r *Renderer) Writer() io.Writer {
	return r.w
}

// Clear clears the screen when enabled.
func (r *Renderer) Clear() {
	if r.clear {
		fmt.Fprint(r.w, "\033[2J\033[H")
	}
}

// Blank writes an empty line.
func (r *Renderer) Blank() {
	fmt.Fprintln(r.w)
}

// Line writes a plain formatted line.
func (r *Renderer) Line(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Tinted writes a formatted line in tone.
func (r *Renderer) Tinted(tone Tone, format string, args ...any) {
	fmt.Fprintln(r.w, Paint(tone, fmt.Sprintf(format, args...)))
}

// Success writes a green check line.
func (r *Renderer) Success(format string, args ...any) {
	r.Tinted(Green, "✓ "+format, args...)
}

// Notice writes a yellow check line, used for completed actions that
// reduce capacity such as deactivation.
func (r *Renderer) Notice(format string, args ...any) {
	r.Tinted(Yellow, "✓ "+format, args...)
}

// Failure writes a red cross line.
func (r *Renderer) Failure(format string, args ...any) {
	r.Tinted(Red, "✗ "+format, args...)
}

// Prompt writes a cyan prompt without a trailing newline.
func (r *Renderer) Prompt(text string) {
	fmt.Fprint(r.w, Paint(Cyan, text))
}

// Rule writes a full width double rule.
func (r *Renderer) Rule(tone Tone) {
	fmt.Fprintln(r.w, Paint(tone, strings.Repeat("═", ruleWidth)))
}

// Section writes a bold title between two cyan rules.
func (r *Renderer) Section(title string) {
	r.Rule(Cyan)
	r.Tinted(Bold, "%s", title)
	r.Rule(Cyan)
}

// Banner writes centered lines inside a double border.
func (r *Renderer) Banner(tone Tone, lines ...string) {
	style := r.lg.NewStyle().
		Border(lipgloss.DoubleBorder()).
		Width(ruleWidth).
		Align(lipgloss.Center)

	box := style.Render(strings.Join(lines, "\n"))
	for _, l := range strings.Split(box, "\n") {
		fmt.Fprintln(r.w, Paint(tone, l))
	}
}

// Box writes a titled box with left aligned content lines.
func (r *Renderer) Box(title string, lines []string) {
	const width = 58

	titleStyle := r.lg.NewStyle().Width(width).Align(lipgloss.Center).Bold(true)
	body := r.lg.NewStyle().Width(width)

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		strings.Repeat("─", width),
		body.Render(strings.Join(lines, "\n")),
	)
	fmt.Fprintln(r.w, r.lg.NewStyle().Border(lipgloss.DoubleBorder()).Render(content))
}
