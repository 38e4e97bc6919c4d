package model

// PageEmbedding is one indexed page. Rows are append-only: re-indexing the same
// URL creates a new row rather than replacing the old one.
type PageEmbedding struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Embedding []float32 `json:"-"`
	Ctime     int64     `json:"ctime"`
	Mtime     int64     `json:"mtime"`
}
