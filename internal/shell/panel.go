package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/sysreport/sysreport/internal/report"
	"github.com/sysreport/sysreport/internal/theme"
)

const (
	DefaultWidth = 72
	minWidth     = 24

	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
)

// ActionBar lists the commands the interactive shell accepts.
const ActionBar = "[1] Export to TXT  [2] Export to PDF  [t] Toggle theme  [q] Quit"

// RenderOptions controls panel output.
type RenderOptions struct {
	// Width is the panel width in terminal cells.
	Width int
	// Color enables ANSI true-colour output.
	Color bool
}

// ColorFor reports whether f is a terminal that should get colour.
func ColorFor(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render draws one titled box per section followed by the action bar.
func Render(w io.Writer, sections []report.Section, p theme.Palette, opts RenderOptions) error {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	if width < minWidth {
		width = minWidth
	}
	pen := painter{enabled: opts.Color, palette: p}

	bw := bufio.NewWriter(w)
	for _, s := range sections {
		renderBox(bw, pen, s, width)
	}
	bw.WriteString(pen.button(ActionBar) + "\n")
	return bw.Flush()
}

func renderBox(w *bufio.Writer, pen painter, s report.Section, width int) {
	inner := width - 4

	label := runewidth.Truncate(s.Label(), width-6, "…")
	fill := width - 5 - runewidth.StringWidth(label)
	if fill < 1 {
		fill = 1
	}
	w.WriteString(pen.border("╭─ ") + pen.title(label) + pen.border(" "+strings.Repeat("─", fill)+"╮") + "\n")

	for _, line := range strings.Split(s.Content, "\n") {
		line = runewidth.Truncate(strings.TrimRight(line, "\r"), inner, "…")
		line = runewidth.FillRight(line, inner)
		w.WriteString(pen.border("│") + pen.text(" "+line+" ") + pen.border("│") + "\n")
	}

	w.WriteString(pen.border("╰"+strings.Repeat("─", width-2)+"╯") + "\n")
}

// painter wraps text in the palette's colours when enabled.
type painter struct {
	enabled bool
	palette theme.Palette
}

func (p painter) paint(s string, codes ...string) string {
	if !p.enabled {
		return s
	}
	return strings.Join(codes, "") + s + ansiReset
}

func (p painter) border(s string) string {
	return p.paint(s, fg(p.palette.Border), bg(p.palette.Background))
}

func (p painter) title(s string) string {
	return p.paint(s, ansiBold, fg(p.palette.Accent), bg(p.palette.Background))
}

func (p painter) text(s string) string {
	return p.paint(s, fg(p.palette.Foreground), bg(p.palette.TextBackground))
}

func (p painter) button(s string) string {
	return p.paint(s, ansiBold, fg("#ffffff"), bg(p.palette.Button))
}

func fg(hex string) string { return sgr(38, hex) }

func bg(hex string) string { return sgr(48, hex) }

// sgr builds a 24-bit colour escape. Malformed colours produce no escape.
func sgr(kind int, hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return ""
	}
	return fmt.Sprintf("\033[%d;2;%d;%d;%dm", kind, r, g, b)
}

func parseHex(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
