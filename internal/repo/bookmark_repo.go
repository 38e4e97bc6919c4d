package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/recollecthq/recollect/internal/model"
	"github.com/recollecthq/recollect/internal/pkg/dbutil"
	appErr "github.com/recollecthq/recollect/internal/pkg/errors"
)

type BookmarkRepo struct {
	db *sql.DB
}

func NewBookmarkRepo(db *sql.DB) *BookmarkRepo {
	return &BookmarkRepo{db: db}
}

var bookmarkFields = []string{"id", "user_id", "workspace_id", "url", "title", "favicon", "position", "ctime", "mtime"}

func (r *BookmarkRepo) Create(ctx context.Context, bm *model.Bookmark) error {
	data := map[string]interface{}{
		"id":           bm.ID,
		"user_id":      bm.UserID,
		"workspace_id": bm.WorkspaceID,
		"url":          bm.URL,
		"title":        bm.Title,
		"favicon":      bm.Favicon,
		"position":     bm.Position,
		"ctime":        bm.Ctime,
		"mtime":        bm.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("bookmarks", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *BookmarkRepo) ListByWorkspace(ctx context.Context, userID, workspaceID string) ([]model.Bookmark, error) {
	where := map[string]interface{}{
		"user_id":      userID,
		"workspace_id": workspaceID,
		"_orderby":     "position asc, ctime asc",
	}
	return r.list(ctx, where)
}

func (r *BookmarkRepo) ListByUser(ctx context.Context, userID string) ([]model.Bookmark, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime asc",
	}
	return r.list(ctx, where)
}

func (r *BookmarkRepo) list(ctx context.Context, where map[string]interface{}) ([]model.Bookmark, error) {
	sqlStr, args, err := builder.BuildSelect("bookmarks", where, bookmarkFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var results []model.Bookmark
	for rows.Next() {
		var bm model.Bookmark
		if err := rows.Scan(&bm.ID, &bm.UserID, &bm.WorkspaceID, &bm.URL, &bm.Title, &bm.Favicon, &bm.Position, &bm.Ctime, &bm.Mtime); err != nil {
			return nil, err
		}
		results = append(results, bm)
	}
	return results, rows.Err()
}

func (r *BookmarkRepo) Update(ctx context.Context, userID, id string, update map[string]interface{}) error {
	where := map[string]interface{}{"id": id, "user_id": userID}
	sqlStr, args, err := builder.BuildUpdate("bookmarks", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *BookmarkRepo) Delete(ctx context.Context, userID, id string) error {
	where := map[string]interface{}{"id": id, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete("bookmarks", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *BookmarkRepo) DeleteByWorkspace(ctx context.Context, userID, workspaceID string) error {
	where := map[string]interface{}{"user_id": userID, "workspace_id": workspaceID}
	sqlStr, args, err := builder.BuildDelete("bookmarks", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
