package service

import (
	"context"
	"strings"
	"time"

	"github.com/recollecthq/recollect/internal/model"
	appErr "github.com/recollecthq/recollect/internal/pkg/errors"
	"github.com/recollecthq/recollect/internal/repo"
)

type BookmarkService struct {
	bookmarks  *repo.BookmarkRepo
	workspaces *repo.WorkspaceRepo
}

func NewBookmarkService(bookmarks *repo.BookmarkRepo, workspaces *repo.WorkspaceRepo) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks, workspaces: workspaces}
}

type BookmarkInput struct {
	WorkspaceID string
	URL         string
	Title       string
	Favicon     string
	Position    int
}

func (s *BookmarkService) Create(ctx context.Context, userID string, input BookmarkInput) (*model.Bookmark, error) {
	url := strings.TrimSpace(input.URL)
	if url == "" || len(url) > maxURLLen || input.WorkspaceID == "" {
		return nil, appErr.ErrInvalid
	}
	// The workspace must exist and belong to the caller.
	if _, err := s.workspaces.Get(ctx, userID, input.WorkspaceID); err != nil {
		return nil, err
	}
	now := time.Now().UnixMilli()
	bm := &model.Bookmark{
		ID:          newID(),
		UserID:      userID,
		WorkspaceID: input.WorkspaceID,
		URL:         url,
		Title:       strings.TrimSpace(input.Title),
		Favicon:     input.Favicon,
		Position:    input.Position,
		Ctime:       now,
		Mtime:       now,
	}
	if err := s.bookmarks.Create(ctx, bm); err != nil {
		return nil, err
	}
	return bm, nil
}

func (s *BookmarkService) List(ctx context.Context, userID, workspaceID string) ([]model.Bookmark, error) {
	if workspaceID == "" {
		return s.bookmarks.ListByUser(ctx, userID)
	}
	return s.bookmarks.ListByWorkspace(ctx, userID, workspaceID)
}

func (s *BookmarkService) Update(ctx context.Context, userID, id string, input BookmarkInput) error {
	url := strings.TrimSpace(input.URL)
	if url == "" || len(url) > maxURLLen {
		return appErr.ErrInvalid
	}
	update := map[string]interface{}{
		"url":      url,
		"title":    strings.TrimSpace(input.Title),
		"favicon":  input.Favicon,
		"position": input.Position,
		"mtime":    time.Now().UnixMilli(),
	}
	return s.bookmarks.Update(ctx, userID, id, update)
}

func (s *BookmarkService) Delete(ctx context.Context, userID, id string) error {
	return s.bookmarks.Delete(ctx, userID, id)
}
