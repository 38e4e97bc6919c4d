package model

type Note struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	URL     string `json:"url,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Ctime   int64  `json:"ctime"`
	Mtime   int64  `json:"mtime"`
}
