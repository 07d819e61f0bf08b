package service

import (
	"bizcanvas_backend/internal/model"
	"bizcanvas_backend/internal/repository"
	"bizcanvas_backend/pkg/logger"
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const analyticsCacheTTL = time.Hour

// CategoryAverage is one bar pair in the report chart: the mean confidence
// and knowledge rating across a category's answered questions.
type CategoryAverage struct {
	Category      string  `json:"category"`
	AvgConfidence float64 `json:"avgConfidence"`
	AvgKnowledge  float64 `json:"avgKnowledge"`
	Count         int     `json:"count"`
}

type AnalyticsService struct {
	AnswerRepo *repository.AnswerRepository
	Redis      *redis.Client
}

func NewAnalyticsService(answerRepo *repository.AnswerRepository, redisClient *redis.Client) *AnalyticsService {
	return &AnalyticsService{
		AnswerRepo: answerRepo,
		Redis:      redisClient,
	}
}

// roundScore keeps one decimal place, so 6.666... renders as 6.7.
func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

// CalculateCategoryAverages groups answers by their stored category name and
// averages both rating dimensions. Categories come back in lexicographic
// order; an empty answer set yields an empty slice, never nil-dereferences.
func CalculateCategoryAverages(answers []model.Answer) []CategoryAverage {
	type sums struct {
		confidence int
		knowledge  int
		count      int
	}
	byCategory := make(map[string]*sums)
	for _, a := range answers {
		s, ok := byCategory[a.Category]
		if !ok {
			s = &sums{}
			byCategory[a.Category] = s
		}
		s.confidence += a.ConfidenceValue
		s.knowledge += a.KnowledgeValue
		s.count++
	}

	result := make([]CategoryAverage, 0, len(byCategory))
	for category, s := range byCategory {
		result = append(result, CategoryAverage{
			Category:      category,
			AvgConfidence: roundScore(float64(s.confidence) / float64(s.count)),
			AvgKnowledge:  roundScore(float64(s.knowledge) / float64(s.count)),
			Count:         s.count,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})
	return result
}

// ForAssessment computes category averages for an assessment, with a Redis
// cache in front for completed assessments. Draft assessments are always
// computed fresh since their answers still change.
func (s *AnalyticsService) ForAssessment(ctx context.Context, assessment *model.Assessment) ([]CategoryAverage, error) {
	cacheKey := "analytics:" + assessment.ID

	if assessment.Status == model.StatusCompleted && s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var result []CategoryAverage
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result, nil
			}
		}
	}

	answers, err := s.AnswerRepo.ListByAssessment(assessment.ID)
	if err != nil {
		return nil, err
	}
	result := CalculateCategoryAverages(answers)

	if assessment.Status == model.StatusCompleted && s.Redis != nil {
		payload, err := json.Marshal(result)
		if err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, analyticsCacheTTL).Err(); err != nil {
				logger.Log.Warn("analytics cache write failed",
					zap.String("assessmentId", assessment.ID),
					zap.Error(err))
			}
		}
	}

	return result, nil
}
