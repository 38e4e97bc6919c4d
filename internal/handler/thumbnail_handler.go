package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recollecthq/recollect/internal/filestore"
	"github.com/recollecthq/recollect/internal/pkg/errcode"
	"github.com/recollecthq/recollect/internal/pkg/response"
)

const maxThumbnailBytes = 2 << 20

// ThumbnailHandler stores one thumbnail per (user, url). Keys are derived
// from the url hash so re-uploads overwrite instead of accumulating.
type ThumbnailHandler struct {
	store filestore.Store
}

func NewThumbnailHandler(store filestore.Store) *ThumbnailHandler {
	return &ThumbnailHandler{store: store}
}

func thumbnailKey(userID, url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("thumbnails/%s/%s", userID, hex.EncodeToString(sum[:]))
}

func (h *ThumbnailHandler) Upload(c *gin.Context) {
	url := strings.TrimSpace(c.PostForm("url"))
	if url == "" {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "url is required")
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "file is required")
		return
	}
	if fileHeader.Size <= 0 || fileHeader.Size > maxThumbnailBytes {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "file size out of range")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		handleError(c, err)
		return
	}
	defer file.Close()
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := thumbnailKey(getUserID(c), url)
	if err := h.store.Save(c.Request.Context(), key, file, fileHeader.Size, contentType); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *ThumbnailHandler) Get(c *gin.Context) {
	url := strings.TrimSpace(c.Query("url"))
	if url == "" {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "url is required")
		return
	}
	reader, contentType, err := h.store.Open(c.Request.Context(), thumbnailKey(getUserID(c), url))
	if err != nil {
		handleError(c, err)
		return
	}
	defer reader.Close()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
