package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/recollecthq/recollect/internal/model"
	"github.com/recollecthq/recollect/internal/pkg/dbutil"
	appErr "github.com/recollecthq/recollect/internal/pkg/errors"
)

type WorkspaceRepo struct {
	db *sql.DB
}

func NewWorkspaceRepo(db *sql.DB) *WorkspaceRepo {
	return &WorkspaceRepo{db: db}
}

var workspaceFields = []string{"id", "user_id", "name", "icon", "position", "ctime", "mtime"}

func (r *WorkspaceRepo) Create(ctx context.Context, ws *model.Workspace) error {
	data := map[string]interface{}{
		"id":       ws.ID,
		"user_id":  ws.UserID,
		"name":     ws.Name,
		"icon":     ws.Icon,
		"position": ws.Position,
		"ctime":    ws.Ctime,
		"mtime":    ws.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("workspaces", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *WorkspaceRepo) ListByUser(ctx context.Context, userID string) ([]model.Workspace, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "position asc, ctime asc",
	}
	sqlStr, args, err := builder.BuildSelect("workspaces", where, workspaceFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var results []model.Workspace
	for rows.Next() {
		var ws model.Workspace
		if err := rows.Scan(&ws.ID, &ws.UserID, &ws.Name, &ws.Icon, &ws.Position, &ws.Ctime, &ws.Mtime); err != nil {
			return nil, err
		}
		results = append(results, ws)
	}
	return results, rows.Err()
}

func (r *WorkspaceRepo) Get(ctx context.Context, userID, id string) (*model.Workspace, error) {
	where := map[string]interface{}{"id": id, "user_id": userID}
	sqlStr, args, err := builder.BuildSelect("workspaces", where, workspaceFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var ws model.Workspace
	if err := rows.Scan(&ws.ID, &ws.UserID, &ws.Name, &ws.Icon, &ws.Position, &ws.Ctime, &ws.Mtime); err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *WorkspaceRepo) Update(ctx context.Context, userID, id string, update map[string]interface{}) error {
	where := map[string]interface{}{"id": id, "user_id": userID}
	sqlStr, args, err := builder.BuildUpdate("workspaces", where, update)
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

func (r *WorkspaceRepo) Delete(ctx context.Context, userID, id string) error {
	where := map[string]interface{}{"id": id, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete("workspaces", where)
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
