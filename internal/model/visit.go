package model

type Visit struct {
	UserID      string `json:"user_id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	VisitCount  int64  `json:"visit_count"`
	LastVisited int64  `json:"last_visited"`
}
