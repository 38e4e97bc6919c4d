package service

import (
	"context"
	"strings"
	"time"

	"github.com/recollecthq/recollect/internal/model"
	appErr "github.com/recollecthq/recollect/internal/pkg/errors"
	"github.com/recollecthq/recollect/internal/repo"
)

const maxNoteContentLen = 1 << 20

type NoteService struct {
	notes *repo.NoteRepo
}

func NewNoteService(notes *repo.NoteRepo) *NoteService {
	return &NoteService{notes: notes}
}

type NoteInput struct {
	URL     string
	Title   string
	Content string
}

func (s *NoteService) Create(ctx context.Context, userID string, input NoteInput) (*model.Note, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || len([]rune(title)) > maxTitleLen || len(input.Content) > maxNoteContentLen {
		return nil, appErr.ErrInvalid
	}
	now := time.Now().UnixMilli()
	note := &model.Note{
		ID:      newID(),
		UserID:  userID,
		URL:     strings.TrimSpace(input.URL),
		Title:   title,
		Content: input.Content,
		Ctime:   now,
		Mtime:   now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) List(ctx context.Context, userID string) ([]model.Note, error) {
	return s.notes.ListByUser(ctx, userID)
}

func (s *NoteService) Get(ctx context.Context, userID, id string) (*model.Note, error) {
	return s.notes.Get(ctx, userID, id)
}

func (s *NoteService) Update(ctx context.Context, userID, id string, input NoteInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" || len([]rune(title)) > maxTitleLen || len(input.Content) > maxNoteContentLen {
		return appErr.ErrInvalid
	}
	update := map[string]interface{}{
		"url":     strings.TrimSpace(input.URL),
		"title":   title,
		"content": input.Content,
		"mtime":   time.Now().UnixMilli(),
	}
	return s.notes.Update(ctx, userID, id, update)
}

func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	return s.notes.Delete(ctx, userID, id)
}
