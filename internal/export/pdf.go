package export

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/sysreport/sysreport/internal/report"
)

// ReportTitle is the heading printed at the top of the PDF report.
const ReportTitle = "Informe del Sistema"

// A4 page geometry in millimetres. The cursor grows downward from the top
// margin and a new page starts before any line that would reach the
// bottom margin.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginTop    = 20.0
	marginBottom = 20.0
	marginLeft   = 20.0
	marginRight  = 20.0
	bodyIndent   = 25.0

	headerStep  = 7.5
	logoStep    = 30.0
	logoWidth   = 40.0
	titleStep   = 10.0
	headingStep = 5.0
	lineStep    = 4.0
	sectionGap  = 6.0
)

// ItemKind is what a laid out item draws.
type ItemKind int

const (
	ItemTimestamp ItemKind = iota
	ItemLogo
	ItemTitle
	ItemHeading
	ItemBody
)

// Item is one positioned element. For ItemTimestamp, X is the right edge.
type Item struct {
	Kind ItemKind
	Text string
	X, Y float64
}

// Page is the items drawn on one page.
type Page struct {
	Items []Item
}

// Layout paginates the report. Sections may break across pages.
func Layout(sections []report.Section, stamp string, hasLogo bool) []Page {
	l := &layout{y: marginTop}
	l.newPage()

	l.add(ItemTimestamp, "Fecha y hora: "+stamp, pageWidth-marginRight)
	l.y += headerStep
	if hasLogo {
		l.add(ItemLogo, "", marginLeft)
		l.y += logoStep
	}
	l.add(ItemTitle, ReportTitle, marginLeft)
	l.y += titleStep

	for _, s := range sections {
		l.line(ItemHeading, s.Title, marginLeft)
		l.y += headingStep
		for _, text := range splitLines(s.Content) {
			l.line(ItemBody, text, bodyIndent)
			l.y += lineStep
		}
		l.y += sectionGap
	}
	return l.pages
}

type layout struct {
	pages []Page
	y     float64
}

func (l *layout) newPage() {
	l.pages = append(l.pages, Page{})
	l.y = marginTop
}

// line adds an item, breaking the page first when the cursor is past the
// bottom margin.
func (l *layout) line(kind ItemKind, text string, x float64) {
	if l.y >= pageHeight-marginBottom {
		l.newPage()
	}
	l.add(kind, text, x)
}

func (l *layout) add(kind ItemKind, text string, x float64) {
	p := &l.pages[len(l.pages)-1]
	p.Items = append(p.Items, Item{Kind: kind, Text: text, X: x, Y: l.y})
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// PDFOptions configures WritePDF.
type PDFOptions struct {
	// LogoPath is drawn under the header when the file exists and loads.
	LogoPath string
	Now      time.Time
}

// WritePDF renders sections as an A4 report.
func WritePDF(w io.Writer, sections []report.Section, opts PDFOptions) error {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	hasLogo := registerLogo(pdf, opts.LogoPath)
	pages := Layout(sections, opts.Now.Format("2006-01-02 15:04:05"), hasLogo)

	for _, page := range pages {
		pdf.AddPage()
		for _, it := range page.Items {
			switch it.Kind {
			case ItemTimestamp:
				pdf.SetFont("Helvetica", "", 10)
				s := tr(it.Text)
				pdf.Text(it.X-pdf.GetStringWidth(s), it.Y, s)
			case ItemLogo:
				pdf.ImageOptions(opts.LogoPath, it.X, it.Y, logoWidth, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
			case ItemTitle:
				pdf.SetFont("Helvetica", "B", 14)
				pdf.Text(it.X, it.Y, tr(it.Text))
			default:
				pdf.SetFont("Helvetica", "", 10)
				pdf.Text(it.X, it.Y, tr(it.Text))
			}
		}
	}

	return pdf.Output(w)
}

// registerLogo reports whether the logo at path can be drawn. A missing or
// unreadable logo is skipped.
func registerLogo(pdf *fpdf.Fpdf, path string) bool {
	if path == "" {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		return false
	}
	info := pdf.RegisterImageOptions(path, fpdf.ImageOptions{ReadDpi: true})
	if !pdf.Ok() || info == nil {
		pdf.ClearError()
		return false
	}
	return true
}
