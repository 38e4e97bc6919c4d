package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recollecthq/recollect/internal/pkg/errcode"
	"github.com/recollecthq/recollect/internal/pkg/response"
	"github.com/recollecthq/recollect/internal/service"
)

type BookmarkHandler struct {
	bookmarks *service.BookmarkService
}

func NewBookmarkHandler(bookmarks *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

type bookmarkRequest struct {
	WorkspaceID string `json:"workspace_id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Favicon     string `json:"favicon"`
	Position    int    `json:"position"`
}

func (h *BookmarkHandler) Create(c *gin.Context) {
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	bm, err := h.bookmarks.Create(c.Request.Context(), getUserID(c), service.BookmarkInput{
		WorkspaceID: req.WorkspaceID,
		URL:         req.URL,
		Title:       req.Title,
		Favicon:     req.Favicon,
		Position:    req.Position,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, bm)
}

func (h *BookmarkHandler) List(c *gin.Context) {
	items, err := h.bookmarks.List(c.Request.Context(), getUserID(c), c.Query("workspace_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

func (h *BookmarkHandler) Update(c *gin.Context) {
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	err := h.bookmarks.Update(c.Request.Context(), getUserID(c), c.Param("id"), service.BookmarkInput{
		WorkspaceID: req.WorkspaceID,
		URL:         req.URL,
		Title:       req.Title,
		Favicon:     req.Favicon,
		Position:    req.Position,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *BookmarkHandler) Delete(c *gin.Context) {
	if err := h.bookmarks.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
