package model

type Bookmark struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	WorkspaceID string `json:"workspace_id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Favicon     string `json:"favicon,omitempty"`
	Position    int    `json:"position"`
	Ctime       int64  `json:"ctime"`
	Mtime       int64  `json:"mtime"`
}
