package bootstrap

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"kpione/internal/config"
	"kpione/internal/model"
	"kpione/internal/pkg/token"
	postgresClient "kpione/internal/platform/postgres"
)

// App holds the process-wide resources: the configuration, the connection
// pool and the token service built from the symmetric key. Everything else
// is constructed per-router from these.
type App struct {
	Config *config.Config
	DB     *gorm.DB
	Tokens *token.Service

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	db, err := postgresClient.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Vote{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	tokens, err := token.NewService(cfg.Auth.PasetoSecretKey, time.Duration(cfg.Auth.TokenExpireMinute)*time.Minute)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:    cfg,
		DB:        db,
		Tokens:    tokens,
		StartedAt: time.Now(),
	}, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
