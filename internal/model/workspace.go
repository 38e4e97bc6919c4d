package model

type Workspace struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	Position int    `json:"position"`
	Ctime    int64  `json:"ctime"`
	Mtime    int64  `json:"mtime"`
}
