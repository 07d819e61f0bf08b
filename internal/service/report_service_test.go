package service

import (
	"bizcanvas_backend/internal/config"
	"bizcanvas_backend/internal/llm"
	"bizcanvas_backend/internal/model"
	"bizcanvas_backend/internal/util"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportService(t *testing.T, e *testEnv) *ReportService {
	t.Helper()

	e.cfg.Storage = config.StorageConfig{Type: "local", LocalPath: t.TempDir()}
	analytics := NewAnalyticsService(e.answerRepo, nil)
	insights := newInsightService(e, llm.NewMockProvider())
	storage := NewStorageService(e.cfg)
	return NewReportService(e.assessmentRepo, e.answerRepo, analytics, insights, storage)
}

func storeInsight(t *testing.T, e *testEnv, assessmentID string, category string) {
	t.Helper()

	require.NoError(t, e.insightRepo.Replace(assessmentID, 1, []model.AIInsight{{
		Category:           category,
		Strengths:          model.StringList{"solid positioning"},
		Weaknesses:         model.StringList{},
		Recommendations:    model.StringList{"keep iterating"},
		ConfidenceAnalysis: "good",
		KnowledgeAnalysis:  "good",
		GeneratedAt:        time.Now(),
	}}))
}

func TestGroupAnswersSortsCategories(t *testing.T) {
	answers := []model.Answer{
		{Category: "Revenue Streams", Text: "subscriptions"},
		{Category: "Channels", Text: "direct sales"},
		{Category: "Channels", Text: "partner resellers"},
	}

	sections := groupAnswers(answers)
	require.Len(t, sections, 2)

	assert.Equal(t, "Channels", sections[0].Category)
	require.Len(t, sections[0].Answers, 2)
	assert.Equal(t, "direct sales", sections[0].Answers[0].Text)
	assert.Equal(t, "Revenue Streams", sections[1].Category)
}

func TestComposeReportFull(t *testing.T) {
	e := newTestEnv(t)
	svc := newReportService(t, e)

	assessment := e.createAssessment(t, 1, model.StatusCompleted)
	e.addAnswer(t, assessment.ID, "Channels", 1, 6, 7)
	e.addAnswer(t, assessment.ID, "Channels", 2, 7, 8)
	storeInsight(t, e, assessment.ID, "Channels")

	report, err := svc.Compose(context.Background(), 1, assessment.ID)
	require.NoError(t, err)

	assert.True(t, report.HasAnswers)
	assert.Equal(t, InsightStatusReady, report.InsightStatus)
	require.Len(t, report.Sections, 1)
	assert.Equal(t, "Channels", report.Sections[0].Category)

	require.Len(t, report.Analytics, 1)
	assert.Equal(t, 6.5, report.Analytics[0].AvgConfidence)
	assert.Equal(t, 7.5, report.Analytics[0].AvgKnowledge)

	require.Len(t, report.Insights, 1)
	assert.Equal(t, ChartConfig{Min: 0, Max: 10, Step: 1}, report.Chart)
}

func TestComposeReportEmptyAssessment(t *testing.T) {
	e := newTestEnv(t)
	svc := newReportService(t, e)

	assessment := e.createAssessment(t, 1, model.StatusCompleted)

	report, err := svc.Compose(context.Background(), 1, assessment.ID)
	require.NoError(t, err)

	assert.False(t, report.HasAnswers)
	assert.Equal(t, InsightStatusAbsent, report.InsightStatus)
	assert.Empty(t, report.Sections)
	assert.Empty(t, report.Analytics)
	assert.Empty(t, report.Insights)
}

func TestComposeReportRequiresCompletion(t *testing.T) {
	e := newTestEnv(t)
	svc := newReportService(t, e)

	assessment := e.createAssessment(t, 1, model.StatusDraft)

	_, err := svc.Compose(context.Background(), 1, assessment.ID)
	assert.ErrorIs(t, err, util.ErrAssessmentNotComplete)
}

func TestExportWritesSnapshotAndRecord(t *testing.T) {
	e := newTestEnv(t)
	svc := newReportService(t, e)

	assessment := e.createAssessment(t, 1, model.StatusCompleted)
	e.addAnswer(t, assessment.ID, "Channels", 1, 6, 7)
	storeInsight(t, e, assessment.ID, "Channels")

	export, err := svc.Export(context.Background(), 1, assessment.ID)
	require.NoError(t, err)

	assert.Equal(t, "json", export.Format)
	assert.NotEmpty(t, export.URL)

	// The snapshot on disk must be the composed report.
	raw, err := os.ReadFile(filepath.Join(e.cfg.Storage.LocalPath, export.ObjectKey))
	require.NoError(t, err)

	var snapshot Report
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	assert.True(t, snapshot.HasAnswers)
	require.Len(t, snapshot.Analytics, 1)

	// And the export is listed for the owner.
	exports, err := svc.ListExports(assessment.ID, 1)
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, export.ObjectKey, exports[0].ObjectKey)
}
