// Package api serves the collected sections as a local web panel.
package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sysreport/sysreport/internal/export"
	"github.com/sysreport/sysreport/internal/report"
	"github.com/sysreport/sysreport/internal/theme"
)

// APIHandler serves one fixed set of sections. Only the theme changes
// between requests.
type APIHandler struct {
	sections []report.Section
	exporter export.Exporter

	mu    sync.Mutex
	theme *theme.Theme
}

// NewAPIHandler creates a new APIHandler instance.
func NewAPIHandler(sections []report.Section, th *theme.Theme, exp export.Exporter) *APIHandler {
	return &APIHandler{sections: sections, theme: th, exporter: exp}
}

// NewRouter returns a gin engine with the panel routes registered.
func NewRouter(h *APIHandler) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(panelTemplate)
	h.Register(r)
	return r
}

// Register adds the panel routes to r.
func (h *APIHandler) Register(r gin.IRouter) {
	r.GET("/", h.Panel)
	r.GET("/icon", h.Icon)
	r.POST("/theme/toggle", h.ToggleTheme)

	exportGroup := r.Group("/export")
	{
		exportGroup.GET("/txt", h.ExportText)
		exportGroup.GET("/pdf", h.ExportPDF)
	}
}

// current returns the theme state for one request.
func (h *APIHandler) current() (theme.Mode, theme.Palette, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.theme.Mode(), h.theme.Palette(), h.theme.Icon()
}
