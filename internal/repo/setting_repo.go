package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/recollecthq/recollect/internal/model"
	"github.com/recollecthq/recollect/internal/pkg/dbutil"
)

type SettingRepo struct {
	db *sql.DB
}

func NewSettingRepo(db *sql.DB) *SettingRepo {
	return &SettingRepo{db: db}
}

func (r *SettingRepo) Upsert(ctx context.Context, item *model.Setting) error {
	const query = `
		INSERT INTO settings (user_id, skey, svalue, mtime)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, skey) DO UPDATE SET
			svalue = EXCLUDED.svalue,
			mtime = EXCLUDED.mtime
	`
	_, err := r.db.ExecContext(ctx, query, item.UserID, item.Key, item.Value, item.Mtime)
	return err
}

func (r *SettingRepo) ListByUser(ctx context.Context, userID string) ([]model.Setting, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "skey asc",
	}
	sqlStr, args, err := builder.BuildSelect("settings", where, []string{"user_id", "skey", "svalue", "mtime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var results []model.Setting
	for rows.Next() {
		var item model.Setting
		if err := rows.Scan(&item.UserID, &item.Key, &item.Value, &item.Mtime); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

func (r *SettingRepo) Delete(ctx context.Context, userID, key string) error {
	where := map[string]interface{}{"user_id": userID, "skey": key}
	sqlStr, args, err := builder.BuildDelete("settings", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
