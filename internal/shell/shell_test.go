package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysreport/sysreport/internal/export"
	"github.com/sysreport/sysreport/internal/report"
	"github.com/sysreport/sysreport/internal/theme"
)

func testSections() []report.Section {
	return []report.Section{
		{Icon: "🧠", Title: "CPU", Content: "Intel(R) Core(TM) i5-8250U CPU @ 1.60GHz"},
		{Icon: "📦", Title: "RAM", Content: "7.70 GB"},
		{Title: "Red", Content: "IP Local: 10.0.0.5\nIP Pública: No disponible"},
		{Title: "Largo", Content: strings.Repeat("x", 200)},
	}
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testSections(), theme.New(theme.Dark, theme.Icons{}).Palette(), RenderOptions{Width: 40}))

	out := buf.String()
	assert.NotContains(t, out, "\033[")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Equal(t, ActionBar, lines[len(lines)-1])
	for _, line := range lines[:len(lines)-1] {
		assert.Equal(t, 40, runewidth.StringWidth(line), line)
	}

	cpu := strings.Index(out, "🧠 CPU")
	ram := strings.Index(out, "📦 RAM")
	red := strings.Index(out, "Red")
	assert.True(t, cpu >= 0 && cpu < ram && ram < red, "sections out of order")
	assert.Contains(t, out, "│ IP Pública: No disponible")
	assert.Contains(t, out, "…")
}

func TestRenderColorFollowsTheme(t *testing.T) {
	th := theme.New(theme.Dark, theme.Icons{})

	var dark, light, again bytes.Buffer
	require.NoError(t, Render(&dark, testSections(), th.Palette(), RenderOptions{Color: true}))
	th.Toggle()
	require.NoError(t, Render(&light, testSections(), th.Palette(), RenderOptions{Color: true}))
	th.Toggle()
	require.NoError(t, Render(&again, testSections(), th.Palette(), RenderOptions{Color: true}))

	assert.Contains(t, dark.String(), "\033[38;2;255;165;0m")
	assert.Contains(t, light.String(), "\033[38;2;0;51;102m")
	assert.NotEqual(t, dark.String(), light.String())
	assert.Equal(t, dark.String(), again.String())
}

func TestParseHex(t *testing.T) {
	r, g, b, ok := parseHex("#007acc")
	require.True(t, ok)
	assert.Equal(t, [3]uint8{0, 122, 204}, [3]uint8{r, g, b})

	_, _, _, ok = parseHex("blue")
	assert.False(t, ok)
	assert.Empty(t, sgr(38, "#12"))
}

func newTestShell(input string, out *bytes.Buffer) *Shell {
	exp := export.Exporter{Now: func() time.Time { return time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC) }}
	return New(testSections(), theme.New(theme.Dark, theme.Icons{}), exp, strings.NewReader(input), out, RenderOptions{Width: 48})
}

func TestRunExportsToChosenPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	var out bytes.Buffer
	s := newTestShell("1\n"+path+"\nq\n", &out)
	require.NoError(t, s.Run(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "=== 🧠 CPU ===\n"))
	assert.Contains(t, out.String(), "Save report as [info_sistema_2025-01-02_0304.txt]")
	assert.Contains(t, out.String(), "Report saved to "+path)
}

func TestRunCancelWritesNothing(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	var out bytes.Buffer
	s := newTestShell("2\n-\n1\n", &out)
	require.NoError(t, s.Run(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 2, strings.Count(out.String(), "Export cancelled."))
}

func TestRunReportsWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "report.pdf")

	var out bytes.Buffer
	s := newTestShell("pdf\n"+path+"\nquit\n", &out)
	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "Export failed:")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRunToggleTheme(t *testing.T) {
	var out bytes.Buffer
	s := newTestShell("t\nbogus\n", &out)
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, theme.Light, s.theme.Mode())
	assert.Equal(t, 3, strings.Count(out.String(), ActionBar))
	assert.Contains(t, out.String(), `Unknown command "bogus"`)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	s := newTestShell("1\n", &out)
	require.NoError(t, s.Run(ctx))
	assert.NotContains(t, out.String(), "Save report as")
}
