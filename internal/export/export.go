// Package export writes the collected sections to plain text or PDF files.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sysreport/sysreport/internal/report"
)

// Format is an export file format.
type Format int

const (
	Text Format = iota
	PDF
)

// ParseFormat accepts "txt" or "pdf".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "txt", "text":
		return Text, nil
	case "pdf":
		return PDF, nil
	}
	return Text, fmt.Errorf("unknown export format %q (want txt or pdf)", s)
}

func (f Format) String() string {
	if f == PDF {
		return "pdf"
	}
	return "txt"
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	if f == PDF {
		return "application/pdf"
	}
	return "text/plain; charset=utf-8"
}

// SuggestedName is the default file name, stamped to the minute.
func SuggestedName(f Format, now time.Time) string {
	stamp := now.Format("2006-01-02_1504")
	if f == PDF {
		return "informe_sistema_" + stamp + ".pdf"
	}
	return "info_sistema_" + stamp + ".txt"
}

// Prompter asks where to save a file. ok is false when the user cancels.
type Prompter interface {
	SavePath(ctx context.Context, suggested string) (path string, ok bool, err error)
}

// Exporter writes sections to a file chosen through its Prompter.
type Exporter struct {
	Prompter Prompter
	LogoPath string
	Now      func() time.Time
}

func (e *Exporter) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Suggest returns the suggested file name for f at the current time.
func (e *Exporter) Suggest(f Format) string {
	return SuggestedName(f, e.now())
}

// Write serializes sections in format f to w.
func (e *Exporter) Write(w io.Writer, f Format, sections []report.Section) error {
	if f == PDF {
		return WritePDF(w, sections, PDFOptions{LogoPath: e.LogoPath, Now: e.now()})
	}
	return WriteText(w, sections)
}

// Export asks for a destination and writes the file. It returns the path
// written, or "" with a nil error when the prompt was cancelled. A failed
// write leaves no partial file behind.
func (e *Exporter) Export(ctx context.Context, f Format, sections []report.Section) (string, error) {
	path, ok, err := e.Prompter.SavePath(ctx, e.Suggest(f))
	if err != nil {
		return "", fmt.Errorf("failed to choose destination: %w", err)
	}
	if !ok || path == "" {
		return "", nil
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	err = e.Write(file, f, sections)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
