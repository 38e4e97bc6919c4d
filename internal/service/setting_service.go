package service

import (
	"context"
	"strings"
	"time"

	"github.com/recollecthq/recollect/internal/model"
	appErr "github.com/recollecthq/recollect/internal/pkg/errors"
	"github.com/recollecthq/recollect/internal/repo"
)

type SettingService struct {
	settings *repo.SettingRepo
}

func NewSettingService(settings *repo.SettingRepo) *SettingService {
	return &SettingService{settings: settings}
}

func (s *SettingService) Set(ctx context.Context, userID, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > 128 || len(value) > 65536 {
		return appErr.ErrInvalid
	}
	return s.settings.Upsert(ctx, &model.Setting{
		UserID: userID,
		Key:    key,
		Value:  value,
		Mtime:  time.Now().UnixMilli(),
	})
}

func (s *SettingService) List(ctx context.Context, userID string) ([]model.Setting, error) {
	return s.settings.ListByUser(ctx, userID)
}

func (s *SettingService) Delete(ctx context.Context, userID, key string) error {
	if strings.TrimSpace(key) == "" {
		return appErr.ErrInvalid
	}
	return s.settings.Delete(ctx, userID, key)
}
