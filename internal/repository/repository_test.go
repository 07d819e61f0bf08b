package repository

import (
	"bizcanvas_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Question{},
		&model.Preamble{},
		&model.Assessment{},
		&model.Answer{},
		&model.AIInsight{},
		&model.ReportExport{},
	))

	return db
}

func createDraftAssessment(t *testing.T, db *gorm.DB, userID uint) *model.Assessment {
	t.Helper()

	a := &model.Assessment{
		UserID: userID,
		Title:  "Test Assessment",
		Status: model.StatusDraft,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}
