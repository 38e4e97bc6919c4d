package model

type Setting struct {
	UserID string `json:"user_id"`
	Key    string `json:"key"`
	Value  string `json:"value"`
	Mtime  int64  `json:"mtime"`
}
