package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recollecthq/recollect/internal/pkg/errcode"
	"github.com/recollecthq/recollect/internal/pkg/response"
	"github.com/recollecthq/recollect/internal/service"
)

// SemanticHandler exposes the page index/search surface used by the browser
// extension: index one page, free-text search, history search and related
// pages for a given url.
type SemanticHandler struct {
	semantic *service.SemanticService
	admin    *service.PageAdminService
}

func NewSemanticHandler(semantic *service.SemanticService, admin *service.PageAdminService) *SemanticHandler {
	return &SemanticHandler{semantic: semantic, admin: admin}
}

type indexPageRequest struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

func (h *SemanticHandler) IndexPage(c *gin.Context) {
	var req indexPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	result, err := h.semantic.IndexPage(c.Request.Context(), getUserID(c), service.PageIndexInput{
		URL:     req.URL,
		Title:   req.Title,
		Summary: req.Summary,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

type searchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

func (h *SemanticHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	results, err := h.semantic.Search(c.Request.Context(), getUserID(c), req.Query, req.K)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"results": results})
}

func (h *SemanticHandler) HistorySearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	results, err := h.semantic.HistorySearch(c.Request.Context(), getUserID(c), req.Query, req.K)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"results": results})
}

func (h *SemanticHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, stats)
}

func (h *SemanticHandler) ClearIndex(c *gin.Context) {
	deleted, err := h.admin.ClearIndex(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}

type relatedRequest struct {
	URL string `json:"url"`
	K   int    `json:"k"`
}

func (h *SemanticHandler) RelatedPages(c *gin.Context) {
	var req relatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	results, err := h.semantic.RelatedPages(c.Request.Context(), getUserID(c), req.URL, req.K)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"results": results})
}
