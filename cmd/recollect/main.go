package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/recollecthq/recollect/internal/ai"
	"github.com/recollecthq/recollect/internal/config"
	"github.com/recollecthq/recollect/internal/db"
	"github.com/recollecthq/recollect/internal/embedcache"
	"github.com/recollecthq/recollect/internal/filestore"
	"github.com/recollecthq/recollect/internal/handler"
	"github.com/recollecthq/recollect/internal/job"
	"github.com/recollecthq/recollect/internal/middleware"
	"github.com/recollecthq/recollect/internal/repo"
	"github.com/recollecthq/recollect/internal/schedule"
	"github.com/recollecthq/recollect/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "recollect",
		Short: "recollect backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run recollect server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			database, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(database); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, database)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func buildEmbedder(cfg *config.Config, cacheRepo *repo.EmbeddingCacheRepo) (ai.IEmbedder, error) {
	provider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return nil, fmt.Errorf("init ai provider: %w", err)
	}
	embedder := ai.NewEmbedder(provider, cfg.AI.Model)
	if cfg.AI.Cache.EnableDBCache {
		embedder = embedcache.WrapDBCacheToEmbedder(embedder, cacheRepo)
	}
	if cfg.AI.Cache.LRUSize > 0 {
		ttl := time.Duration(cfg.AI.Cache.LRUTTLMinutes) * time.Minute
		embedder = embedcache.WrapLruCacheToEmbedder(embedder, cfg.AI.Cache.LRUSize, ttl)
	}
	return embedder, nil
}

func runServer(cfg *config.Config, database *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("file_store", cfg.FileStore.Type),
	)

	userRepo := repo.NewUserRepo(database)
	workspaceRepo := repo.NewWorkspaceRepo(database)
	bookmarkRepo := repo.NewBookmarkRepo(database)
	noteRepo := repo.NewNoteRepo(database)
	settingRepo := repo.NewSettingRepo(database)
	visitRepo := repo.NewVisitRepo(database)
	pageEmbeddingRepo := repo.NewPageEmbeddingRepo(database)
	embeddingCacheRepo := repo.NewEmbeddingCacheRepo(database)

	embedder, err := buildEmbedder(cfg, embeddingCacheRepo)
	if err != nil {
		return err
	}

	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	workspaceService := service.NewWorkspaceService(workspaceRepo, bookmarkRepo)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, workspaceRepo)
	noteService := service.NewNoteService(noteRepo)
	settingService := service.NewSettingService(settingRepo)
	visitService := service.NewVisitService(visitRepo)
	exportService := service.NewExportService(noteRepo)
	pageAdminService := service.NewPageAdminService(pageEmbeddingRepo)
	semanticService := service.NewSemanticService(embedder, pageEmbeddingRepo, cfg.AI.EmbeddingDim, service.SemanticLimits{
		Search:  cfg.Search.SearchLimit,
		History: cfg.Search.HistoryLimit,
		Related: cfg.Search.RelatedLimit,
	})

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	deps := handler.RouterDeps{
		JWTSecret: []byte(cfg.JWTSecret),
		Auth:      handler.NewAuthHandler(authService),
		Workspace: handler.NewWorkspaceHandler(workspaceService),
		Bookmark:  handler.NewBookmarkHandler(bookmarkService),
		Note:      handler.NewNoteHandler(noteService),
		Setting:   handler.NewSettingHandler(settingService),
		Visit:     handler.NewVisitHandler(visitService),
		Semantic:  handler.NewSemanticHandler(semanticService, pageAdminService),
		Thumbnail: handler.NewThumbnailHandler(store),
		Export:    handler.NewExportHandler(exportService),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	scheduler := schedule.New()
	if cfg.Jobs.EmbeddingCacheCleanupSpec != "" && cfg.AI.Cache.EnableDBCache {
		maxAge := time.Duration(cfg.AI.Cache.MaxAgeDays) * 24 * time.Hour
		if maxAge <= 0 {
			maxAge = 30 * 24 * time.Hour
		}
		cleanup := job.NewEmbeddingCacheCleanupJob(embeddingCacheRepo, maxAge)
		if err := scheduler.Add(cfg.Jobs.EmbeddingCacheCleanupSpec, cleanup); err != nil {
			return fmt.Errorf("schedule %s: %w", cleanup.Name(), err)
		}
	}
	if cfg.Jobs.VisitPruneSpec != "" {
		prune := job.NewVisitPruneJob(visitRepo, cfg.Jobs.VisitKeepDays)
		if err := scheduler.Add(cfg.Jobs.VisitPruneSpec, prune); err != nil {
			return fmt.Errorf("schedule %s: %w", prune.Name(), err)
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
