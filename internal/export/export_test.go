package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysreport/sysreport/internal/report"
)

var fixedNow = time.Date(2025, 3, 9, 14, 7, 33, 0, time.UTC)

func testSections() []report.Section {
	return []report.Section{
		{Icon: "🧠", Title: "CPU", Content: "Intel(R) Core(TM) i7-10700 CPU @ 2.90GHz"},
		{Icon: "💾", Title: "Discos", Content: "C:\\: 100.00 GB usados de 476.00 GB (21.0%)\nD:\\: 1.00 GB usados de 931.00 GB (0.1%)"},
		{Icon: "🌐", Title: "Red", Content: "IP Local: 192.168.1.20\nIP Pública: No disponible"},
		{Title: "Uptime", Content: "Encendido: 1d 2h 3m"},
	}
}

type mockPrompter struct {
	path      string
	ok        bool
	err       error
	suggested string
}

func (m *mockPrompter) SavePath(ctx context.Context, suggested string) (string, bool, error) {
	m.suggested = suggested
	return m.path, m.ok, m.err
}

var delimiter = regexp.MustCompile(`(?m)^=== (.*) ===\n`)

// parseText splits a text export back into (label, content) pairs.
func parseText(s string) [][2]string {
	var out [][2]string
	locs := delimiter.FindAllStringSubmatchIndex(s, -1)
	for i, loc := range locs {
		end := len(s)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		label := s[loc[2]:loc[3]]
		body := strings.TrimSuffix(s[loc[1]:end], "\n\n")
		out = append(out, [2]string{label, body})
	}
	return out
}

func TestWriteTextRoundTrip(t *testing.T) {
	sections := testSections()

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sections))

	got := parseText(buf.String())
	require.Len(t, got, len(sections))
	for i, s := range sections {
		assert.Equal(t, s.Label(), got[i][0])
		assert.Equal(t, s.Content, got[i][1])
	}
	assert.True(t, strings.HasPrefix(buf.String(), "=== 🧠 CPU ===\nIntel(R)"))
}

func TestSuggestedName(t *testing.T) {
	assert.Equal(t, "info_sistema_2025-03-09_1407.txt", SuggestedName(Text, fixedNow))
	assert.Equal(t, "informe_sistema_2025-03-09_1407.pdf", SuggestedName(PDF, fixedNow))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, PDF, f)

	f, err = ParseFormat("txt")
	require.NoError(t, err)
	assert.Equal(t, Text, f)

	_, err = ParseFormat("csv")
	assert.Error(t, err)
}

func longSections(lines int) []report.Section {
	var b strings.Builder
	for i := 0; i < lines; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "line %d", i)
	}
	return []report.Section{
		{Title: "CPU", Content: "short"},
		{Title: "Discos", Content: b.String()},
	}
}

func TestLayoutPaginates(t *testing.T) {
	sections := longSections(150)
	pages := Layout(sections, "2025-03-09 14:07:33", false)
	require.Greater(t, len(pages), 1)

	var body []string
	headings := 0
	for _, p := range pages {
		require.NotEmpty(t, p.Items)
		for _, it := range p.Items {
			assert.Less(t, it.Y, pageHeight-marginBottom, "item drawn past the bottom margin")
			assert.GreaterOrEqual(t, it.Y, marginTop)
			switch it.Kind {
			case ItemBody:
				body = append(body, it.Text)
				assert.Equal(t, bodyIndent, it.X)
			case ItemHeading:
				headings++
			}
		}
	}

	assert.Equal(t, 2, headings)
	require.Len(t, body, 151)
	assert.Equal(t, "short", body[0])
	for i := 0; i < 150; i++ {
		assert.Equal(t, fmt.Sprintf("line %d", i), body[i+1])
	}

	// The long section starts on page one and continues on the next page.
	assert.Equal(t, ItemTimestamp, pages[0].Items[0].Kind)
	assert.Equal(t, marginTop, pages[1].Items[0].Y)
}

func TestLayoutHeader(t *testing.T) {
	pages := Layout(testSections(), "2025-03-09 14:07:33", true)
	require.Len(t, pages, 1)

	items := pages[0].Items
	assert.Equal(t, Item{Kind: ItemTimestamp, Text: "Fecha y hora: 2025-03-09 14:07:33", X: pageWidth - marginRight, Y: marginTop}, items[0])
	assert.Equal(t, ItemLogo, items[1].Kind)
	assert.Equal(t, ItemTitle, items[2].Kind)
	assert.Equal(t, ReportTitle, items[2].Text)
	assert.Equal(t, ItemHeading, items[3].Kind)
	assert.Equal(t, "CPU", items[3].Text)
}

var pageObject = regexp.MustCompile(`/Type\s*/Page\b`)

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, longSections(150), PDFOptions{LogoPath: filepath.Join(t.TempDir(), "missing.png"), Now: fixedNow})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	pages := Layout(longSections(150), "", false)
	assert.Len(t, pageObject.FindAll(buf.Bytes(), -1), len(pages))
}

func TestWritePDFWithLogo(t *testing.T) {
	dir := t.TempDir()
	logo := filepath.Join(dir, "logo_pdf.png")
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 255, G: uint8(x * 30), A: 255})
		}
	}
	f, err := os.Create(logo)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, testSections(), PDFOptions{LogoPath: logo, Now: fixedNow}))
	assert.Contains(t, buf.String(), "/Subtype /Image")

	broken := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(broken, []byte("not a png"), 0o644))
	buf.Reset()
	require.NoError(t, WritePDF(&buf, testSections(), PDFOptions{LogoPath: broken, Now: fixedNow}))
	assert.NotContains(t, buf.String(), "/Subtype /Image")
}

func TestExport(t *testing.T) {
	sections := testSections()

	t.Run("text", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		p := &mockPrompter{path: path, ok: true}
		e := &Exporter{Prompter: p, Now: func() time.Time { return fixedNow }}

		got, err := e.Export(context.Background(), Text, sections)
		require.NoError(t, err)
		assert.Equal(t, path, got)
		assert.Equal(t, "info_sistema_2025-03-09_1407.txt", p.suggested)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Len(t, parseText(string(data)), len(sections))
	})

	t.Run("pdf", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.pdf")
		e := &Exporter{Prompter: &mockPrompter{path: path, ok: true}}

		_, err := e.Export(context.Background(), PDF, sections)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})

	t.Run("cancel writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		for _, f := range []Format{Text, PDF} {
			e := &Exporter{Prompter: &mockPrompter{path: filepath.Join(dir, "ignored"), ok: false}}
			got, err := e.Export(context.Background(), f, sections)
			require.NoError(t, err)
			assert.Empty(t, got)
		}

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("write failure is returned", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.txt")
		e := &Exporter{Prompter: &mockPrompter{path: path, ok: true}}

		_, err := e.Export(context.Background(), Text, sections)
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("prompt failure is returned", func(t *testing.T) {
		boom := errors.New("stdin closed")
		e := &Exporter{Prompter: &mockPrompter{err: boom}}

		_, err := e.Export(context.Background(), Text, sections)
		assert.ErrorIs(t, err, boom)
	})
}
