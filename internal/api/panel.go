package api

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sysreport/sysreport/internal/report"
	"github.com/sysreport/sysreport/internal/theme"
)

const panelHTML = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Información del Sistema</title>
{{if .HasIcon}}<link rel="icon" href="/icon">{{end}}
<style>{{.Style}}</style>
</head>
<body data-theme="{{.Mode}}">
<main class="scroll">
{{range .Sections}}
<fieldset>
<legend>{{.Label}}</legend>
<textarea readonly rows="{{rows .Content}}">{{.Content}}</textarea>
</fieldset>
{{end}}
<a class="button" href="/export/txt">📝 Export to TXT</a>
<a class="button" href="/export/pdf">📄 Export to PDF</a>
<form method="post" action="/theme/toggle"><button class="button" type="submit">Toggle theme</button></form>
</main>
</body>
</html>
`

var panelTemplate = template.Must(template.New("panel").Funcs(template.FuncMap{
	"rows": func(s string) int { return strings.Count(s, "\n") + 2 },
}).Parse(panelHTML))

type panelData struct {
	Mode     string
	Style    template.CSS
	HasIcon  bool
	Sections []report.Section
}

// Panel handles the GET / endpoint.
func (h *APIHandler) Panel(c *gin.Context) {
	mode, palette, icon := h.current()

	c.HTML(http.StatusOK, "panel", panelData{
		Mode:     mode.String(),
		Style:    template.CSS(stylesheet(palette)),
		HasIcon:  fileExists(icon),
		Sections: h.sections,
	})
}

// ToggleTheme handles the POST /theme/toggle endpoint.
func (h *APIHandler) ToggleTheme(c *gin.Context) {
	h.mu.Lock()
	h.theme.Toggle()
	h.mu.Unlock()

	c.Redirect(http.StatusSeeOther, "/")
}

// Icon handles the GET /icon endpoint.
func (h *APIHandler) Icon(c *gin.Context) {
	_, _, icon := h.current()
	if !fileExists(icon) {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(icon)
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func stylesheet(p theme.Palette) string {
	return fmt.Sprintf(`
body { margin: 0; background-color: %[1]s; color: %[2]s; font-family: Arial, sans-serif; }
.scroll { max-width: 550px; height: 100vh; margin: 0 auto; padding: 8px; overflow-y: auto; box-sizing: border-box; }
fieldset { border: 1px solid %[5]s; border-radius: 5px; margin-top: 10px; font-weight: bold; }
legend { margin: 0 auto; padding: 0 3px; color: %[3]s; }
textarea { width: 100%%; box-sizing: border-box; resize: vertical; border: none; background-color: %[4]s; color: %[2]s; font-family: inherit; }
.button { display: block; width: 100%%; box-sizing: border-box; margin-top: 10px; padding: 10px; border: none; border-radius: 4px; background-color: %[6]s; color: white; font-weight: bold; text-align: center; text-decoration: none; cursor: pointer; }
.button:hover { background-color: %[7]s; }
`, p.Background, p.Foreground, p.Accent, p.TextBackground, p.Border, p.Button, p.ButtonHover)
}
