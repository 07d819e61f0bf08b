package service

import (
	"bizcanvas_backend/internal/config"
	"bizcanvas_backend/internal/model"
	"bizcanvas_backend/internal/repository"
	"testing"
	"time"

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

type testEnv struct {
	db             *gorm.DB
	cfg            *config.Config
	answerRepo     *repository.AnswerRepository
	assessmentRepo *repository.AssessmentRepository
	referenceRepo  *repository.ReferenceRepository
	insightRepo    *repository.InsightRepository
	category       *model.Category
	question       *model.Question
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)

	cat := &model.Category{Name: "Value Proposition", DisplayOrder: 1}
	require.NoError(t, db.Create(cat).Error)
	q := &model.Question{CategoryID: cat.ID, Text: "What value do you deliver?", DisplayOrder: 1, IsActive: true}
	require.NoError(t, db.Create(q).Error)

	return &testEnv{
		db: db,
		cfg: &config.Config{
			AI: config.AIConfig{
				Model:          "claude-3-opus-20240229",
				MaxTokens:      1000,
				Temperature:    0.3,
				TimeoutSeconds: 5,
				Concurrency:    2,
			},
			Autosave: config.AutosaveConfig{DebounceMillis: 50},
		},
		answerRepo:     repository.NewAnswerRepository(db),
		assessmentRepo: repository.NewAssessmentRepository(db),
		referenceRepo:  repository.NewReferenceRepository(db),
		insightRepo:    repository.NewInsightRepository(db),
		category:       cat,
		question:       q,
	}
}

func (e *testEnv) createAssessment(t *testing.T, userID uint, status model.AssessmentStatus) *model.Assessment {
	t.Helper()

	a := &model.Assessment{UserID: userID, Title: "Test", Status: status}
	if status == model.StatusCompleted {
		now := time.Now()
		a.CompletedAt = &now
	}
	require.NoError(t, e.db.Create(a).Error)
	return a
}

func (e *testEnv) addAnswer(t *testing.T, assessmentID, category string, questionID uint, confidence, knowledge int) {
	t.Helper()

	require.NoError(t, e.answerRepo.Upsert(&model.Answer{
		AssessmentID:    assessmentID,
		QuestionID:      questionID,
		Text:            "a considered answer",
		ConfidenceValue: confidence,
		KnowledgeValue:  knowledge,
		Category:        category,
	}))
}

func intPtr(v int) *int { return &v }
