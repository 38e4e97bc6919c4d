package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recollecthq/recollect/internal/pkg/errcode"
	"github.com/recollecthq/recollect/internal/pkg/response"
	"github.com/recollecthq/recollect/internal/service"
)

type WorkspaceHandler struct {
	workspaces *service.WorkspaceService
}

func NewWorkspaceHandler(workspaces *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces}
}

type workspaceRequest struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Position int    `json:"position"`
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req workspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	ws, err := h.workspaces.Create(c.Request.Context(), getUserID(c), service.WorkspaceInput{
		Name:     req.Name,
		Icon:     req.Icon,
		Position: req.Position,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, ws)
}

func (h *WorkspaceHandler) List(c *gin.Context) {
	items, err := h.workspaces.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

func (h *WorkspaceHandler) Get(c *gin.Context) {
	ws, err := h.workspaces.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, ws)
}

func (h *WorkspaceHandler) Update(c *gin.Context) {
	var req workspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	err := h.workspaces.Update(c.Request.Context(), getUserID(c), c.Param("id"), service.WorkspaceInput{
		Name:     req.Name,
		Icon:     req.Icon,
		Position: req.Position,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *WorkspaceHandler) Delete(c *gin.Context) {
	if err := h.workspaces.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
