package service

import (
	"bizcanvas_backend/internal/model"
	"bizcanvas_backend/internal/repository"
	"bizcanvas_backend/internal/util"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ChartConfig fixes the rating axis so every report renders on the same
// 0 to 10 scale regardless of the data range.
type ChartConfig struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// CategorySection groups a category's answers for the report body.
type CategorySection struct {
	Category string         `json:"category"`
	Answers  []model.Answer `json:"answers"`
}

// Report is the full composed report view: grouped answers, category
// averages, the AI insight set and its generation status.
type Report struct {
	Assessment    *model.Assessment `json:"assessment"`
	HasAnswers    bool              `json:"hasAnswers"`
	Sections      []CategorySection `json:"sections"`
	Analytics     []CategoryAverage `json:"analytics"`
	Insights      []model.AIInsight `json:"insights"`
	InsightStatus InsightStatus     `json:"insightStatus"`
	Chart         ChartConfig       `json:"chart"`
	GeneratedAt   time.Time         `json:"generatedAt"`
}

type ReportService struct {
	AssessmentRepo *repository.AssessmentRepository
	AnswerRepo     *repository.AnswerRepository
	Analytics      *AnalyticsService
	Insights       *InsightService
	Storage        *StorageService
}

func NewReportService(
	assessmentRepo *repository.AssessmentRepository,
	answerRepo *repository.AnswerRepository,
	analytics *AnalyticsService,
	insights *InsightService,
	storage *StorageService,
) *ReportService {
	return &ReportService{
		AssessmentRepo: assessmentRepo,
		AnswerRepo:     answerRepo,
		Analytics:      analytics,
		Insights:       insights,
		Storage:        storage,
	}
}

// groupAnswers buckets answers by category name, categories in lexicographic
// order, answers inside a section in capture order.
func groupAnswers(answers []model.Answer) []CategorySection {
	byCategory := make(map[string][]model.Answer)
	for _, a := range answers {
		byCategory[a.Category] = append(byCategory[a.Category], a)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	sections := make([]CategorySection, 0, len(categories))
	for _, c := range categories {
		sections = append(sections, CategorySection{Category: c, Answers: byCategory[c]})
	}
	return sections
}

// Compose assembles the report for a completed assessment. Viewing the report
// is also what lazily kicks off insight generation the first time.
func (s *ReportService) Compose(ctx context.Context, userID uint, assessmentID string) (*Report, error) {
	status, insights, err := s.Insights.GetOrGenerate(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}

	assessment, err := s.AssessmentRepo.FindByIDForUser(assessmentID, userID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}

	answers, err := s.AnswerRepo.ListByAssessment(assessmentID)
	if err != nil {
		return nil, err
	}

	analytics, err := s.Analytics.ForAssessment(ctx, assessment)
	if err != nil {
		return nil, err
	}

	if insights == nil {
		insights = []model.AIInsight{}
	}

	return &Report{
		Assessment:    assessment,
		HasAnswers:    len(answers) > 0,
		Sections:      groupAnswers(answers),
		Analytics:     analytics,
		Insights:      insights,
		InsightStatus: status,
		Chart:         ChartConfig{Min: 0, Max: 10, Step: 1},
		GeneratedAt:   time.Now(),
	}, nil
}

// Export snapshots the composed report as a JSON document in object storage
// and records the export.
func (s *ReportService) Export(ctx context.Context, userID uint, assessmentID string) (*model.ReportExport, error) {
	report, err := s.Compose(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("reports/%s/%s.json", assessmentID, uuid.New().String())
	url, err := s.Storage.Upload(ctx, objectKey, bytes.NewReader(payload), int64(len(payload)), "application/json")
	if err != nil {
		return nil, err
	}

	export := &model.ReportExport{
		AssessmentID: assessmentID,
		UserID:       userID,
		ObjectKey:    objectKey,
		URL:          url,
		Format:       "json",
	}
	if err := s.AssessmentRepo.CreateExport(export); err != nil {
		return nil, err
	}
	return export, nil
}

func (s *ReportService) ListExports(assessmentID string, userID uint) ([]model.ReportExport, error) {
	return s.AssessmentRepo.ListExports(assessmentID, userID)
}
