package service

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/recollecthq/recollect/internal/repo"
)

// ExportService renders a user's notes into a single standalone HTML page.
type ExportService struct {
	notes    *repo.NoteRepo
	markdown goldmark.Markdown
}

func NewExportService(notes *repo.NoteRepo) *ExportService {
	return &ExportService{
		notes:    notes,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (s *ExportService) ExportNotesHTML(ctx context.Context, userID string) ([]byte, error) {
	notes, err := s.notes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>notes export</title></head>\n<body>\n")
	for _, note := range notes {
		buf.WriteString("<article>\n")
		fmt.Fprintf(&buf, "<h1>%s</h1>\n", html.EscapeString(note.Title))
		if note.URL != "" {
			fmt.Fprintf(&buf, "<p><a href=%q>%s</a></p>\n", note.URL, html.EscapeString(note.URL))
		}
		fmt.Fprintf(&buf, "<p><time>%s</time></p>\n", time.UnixMilli(note.Mtime).UTC().Format(time.RFC3339))
		if err := s.markdown.Convert([]byte(note.Content), &buf); err != nil {
			return nil, err
		}
		buf.WriteString("</article>\n")
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
