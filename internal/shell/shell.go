// Package shell is the interactive terminal front end: it shows the
// collected sections and waits for export and theme commands.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sysreport/sysreport/internal/export"
	"github.com/sysreport/sysreport/internal/report"
	"github.com/sysreport/sysreport/internal/theme"
)

// Shell owns the terminal session. Sections are fixed for its lifetime.
type Shell struct {
	sections []report.Section
	theme    *theme.Theme
	exporter export.Exporter
	opts     RenderOptions

	prompt *Prompter
	out    io.Writer
}

// New returns a Shell. When exp has no Prompter the shell asks for paths
// on in.
func New(sections []report.Section, th *theme.Theme, exp export.Exporter, in io.Reader, out io.Writer, opts RenderOptions) *Shell {
	s := &Shell{
		sections: sections,
		theme:    th,
		exporter: exp,
		opts:     opts,
		prompt:   NewPrompter(in, out),
		out:      out,
	}
	if s.exporter.Prompter == nil {
		s.exporter.Prompter = s.prompt
	}
	return s
}

// Render draws the panel with the current theme.
func (s *Shell) Render() error {
	return Render(s.out, s.sections, s.theme.Palette(), s.opts)
}

// Run renders the panel and handles commands until quit, EOF or ctx is
// done. Export failures are reported and do not end the session.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.Render(); err != nil {
		return err
	}

	for ctx.Err() == nil {
		fmt.Fprint(s.out, "> ")
		line, err := s.prompt.readLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.ToLower(line) {
		case "":
		case "1", "txt":
			s.Export(ctx, export.Text)
		case "2", "pdf":
			s.Export(ctx, export.PDF)
		case "t", "theme":
			s.theme.Toggle()
			if err := s.Render(); err != nil {
				return err
			}
		case "q", "quit", "exit":
			return nil
		default:
			fmt.Fprintf(s.out, "Unknown command %q. %s\n", line, ActionBar)
		}
	}
	return nil
}

// Export writes one report and prints the outcome. The path is "" when
// the prompt was cancelled.
func (s *Shell) Export(ctx context.Context, f export.Format) (string, error) {
	path, err := s.exporter.Export(ctx, f, s.sections)
	switch {
	case err != nil:
		fmt.Fprintf(s.out, "Export failed: %v\n", err)
	case path == "":
		fmt.Fprintln(s.out, "Export cancelled.")
	default:
		fmt.Fprintf(s.out, "Report saved to %s\n", path)
	}
	return path, err
}

// Prompter asks for save paths on a line based terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads answers from in and writes questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// SavePath asks for a destination. An empty answer takes the suggestion;
// "-" or EOF cancels.
func (p *Prompter) SavePath(ctx context.Context, suggested string) (string, bool, error) {
	fmt.Fprintf(p.out, "Save report as [%s] (Enter accepts, - cancels): ", suggested)
	line, err := p.readLine()
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.out)
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	switch line {
	case "-":
		return "", false, nil
	case "":
		return suggested, true, nil
	}
	return line, true, nil
}

// readLine returns one trimmed line. A final line without a newline is
// returned before io.EOF.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
