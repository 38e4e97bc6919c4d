package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recollecthq/recollect/internal/service"
)

type ExportHandler struct {
	export *service.ExportService
}

func NewExportHandler(export *service.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

func (h *ExportHandler) ExportNotes(c *gin.Context) {
	data, err := h.export.ExportNotesHTML(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="notes.html"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}
