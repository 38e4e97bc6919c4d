package service

import (
	"context"
	"strings"
	"time"

	"github.com/recollecthq/recollect/internal/model"
	appErr "github.com/recollecthq/recollect/internal/pkg/errors"
	"github.com/recollecthq/recollect/internal/repo"
)

type WorkspaceService struct {
	workspaces *repo.WorkspaceRepo
	bookmarks  *repo.BookmarkRepo
}

func NewWorkspaceService(workspaces *repo.WorkspaceRepo, bookmarks *repo.BookmarkRepo) *WorkspaceService {
	return &WorkspaceService{workspaces: workspaces, bookmarks: bookmarks}
}

type WorkspaceInput struct {
	Name     string
	Icon     string
	Position int
}

func (s *WorkspaceService) Create(ctx context.Context, userID string, input WorkspaceInput) (*model.Workspace, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > 128 {
		return nil, appErr.ErrInvalid
	}
	now := time.Now().UnixMilli()
	ws := &model.Workspace{
		ID:       newID(),
		UserID:   userID,
		Name:     name,
		Icon:     input.Icon,
		Position: input.Position,
		Ctime:    now,
		Mtime:    now,
	}
	if err := s.workspaces.Create(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *WorkspaceService) List(ctx context.Context, userID string) ([]model.Workspace, error) {
	return s.workspaces.ListByUser(ctx, userID)
}

func (s *WorkspaceService) Get(ctx context.Context, userID, id string) (*model.Workspace, error) {
	return s.workspaces.Get(ctx, userID, id)
}

func (s *WorkspaceService) Update(ctx context.Context, userID, id string, input WorkspaceInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > 128 {
		return appErr.ErrInvalid
	}
	update := map[string]interface{}{
		"name":     name,
		"icon":     input.Icon,
		"position": input.Position,
		"mtime":    time.Now().UnixMilli(),
	}
	return s.workspaces.Update(ctx, userID, id, update)
}

// Delete removes the workspace and every bookmark filed under it.
func (s *WorkspaceService) Delete(ctx context.Context, userID, id string) error {
	if err := s.workspaces.Delete(ctx, userID, id); err != nil {
		return err
	}
	return s.bookmarks.DeleteByWorkspace(ctx, userID, id)
}
