package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recollecthq/recollect/internal/middleware"
)

// RouterDeps collects everything RegisterRoutes wires up.
type RouterDeps struct {
	JWTSecret []byte
	Auth      *AuthHandler
	Workspace *WorkspaceHandler
	Bookmark  *BookmarkHandler
	Note      *NoteHandler
	Setting   *SettingHandler
	Visit     *VisitHandler
	Semantic  *SemanticHandler
	Thumbnail *ThumbnailHandler
	Export    *ExportHandler
}

func RegisterRoutes(group *gin.RouterGroup, deps RouterDeps) {
	group.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	group.POST("/auth/register", deps.Auth.Register)
	group.POST("/auth/login", deps.Auth.Login)

	authed := group.Group("", middleware.JWTAuth(deps.JWTSecret))

	authed.POST("/workspaces", deps.Workspace.Create)
	authed.GET("/workspaces", deps.Workspace.List)
	authed.GET("/workspaces/:id", deps.Workspace.Get)
	authed.PUT("/workspaces/:id", deps.Workspace.Update)
	authed.DELETE("/workspaces/:id", deps.Workspace.Delete)

	authed.POST("/bookmarks", deps.Bookmark.Create)
	authed.GET("/bookmarks", deps.Bookmark.List)
	authed.PUT("/bookmarks/:id", deps.Bookmark.Update)
	authed.DELETE("/bookmarks/:id", deps.Bookmark.Delete)

	authed.POST("/notes", deps.Note.Create)
	authed.GET("/notes", deps.Note.List)
	authed.GET("/notes/export", deps.Export.ExportNotes)
	authed.GET("/notes/:id", deps.Note.Get)
	authed.PUT("/notes/:id", deps.Note.Update)
	authed.DELETE("/notes/:id", deps.Note.Delete)

	authed.PUT("/settings", deps.Setting.Set)
	authed.GET("/settings", deps.Setting.List)
	authed.DELETE("/settings/:key", deps.Setting.Delete)

	authed.POST("/visits", deps.Visit.Record)
	authed.GET("/visits/top", deps.Visit.Top)

	authed.POST("/thumbnails", deps.Thumbnail.Upload)
	authed.GET("/thumbnails", deps.Thumbnail.Get)

	authed.GET("/pages/stats", deps.Semantic.Stats)
	authed.DELETE("/pages", deps.Semantic.ClearIndex)

	// Every route in this group hits the embedding provider or scans the
	// user's whole vector set, so it is additionally throttled per user.
	semantic := authed.Group("", middleware.RateLimit(500*time.Millisecond))
	semantic.POST("/pages", deps.Semantic.IndexPage)
	semantic.POST("/pages/search", deps.Semantic.Search)
	semantic.POST("/pages/history-search", deps.Semantic.HistorySearch)
	semantic.POST("/pages/related", deps.Semantic.RelatedPages)
}
