package app

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kpione/internal/model"
	"kpione/internal/pkg/token"
)

const testKeyHex = "404142434445464748494a4b4c4d4e4f505152535455565758595a5b5c5d5e5f"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Vote{}))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newTestTokens(t *testing.T) *token.Service {
	t.Helper()
	tokens, err := token.NewService(testKeyHex, 30*time.Minute)
	require.NoError(t, err)
	return tokens
}
