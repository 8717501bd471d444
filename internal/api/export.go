package api

import (
	"bytes"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sysreport/sysreport/internal/export"
)

// ExportText handles the GET /export/txt endpoint.
func (h *APIHandler) ExportText(c *gin.Context) {
	h.export(c, export.Text)
}

// ExportPDF handles the GET /export/pdf endpoint.
func (h *APIHandler) ExportPDF(c *gin.Context) {
	h.export(c, export.PDF)
}

// export sends the report as a download. Where it lands is up to the
// browser's save dialog.
func (h *APIHandler) export(c *gin.Context, f export.Format) {
	var buf bytes.Buffer
	if err := h.exporter.Write(&buf, f, h.sections); err != nil {
		log.Printf("export %s: %v", f, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exporter.Suggest(f)))
	c.Data(http.StatusOK, f.ContentType(), buf.Bytes())
}
