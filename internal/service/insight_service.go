package service

import (
	"bizcanvas_backend/internal/config"
	"bizcanvas_backend/internal/llm"
	"bizcanvas_backend/internal/model"
	"bizcanvas_backend/internal/repository"
	"bizcanvas_backend/internal/util"
	"bizcanvas_backend/pkg/logger"
	"bizcanvas_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// InsightStatus describes where insight generation stands for an assessment.
type InsightStatus string

const (
	InsightStatusAbsent     InsightStatus = "absent"
	InsightStatusGenerating InsightStatus = "generating"
	InsightStatusReady      InsightStatus = "ready"
)

// generatingLockTTL bounds how long the generating flag can linger if the
// process dies mid-run. A fresh request after expiry restarts generation.
const generatingLockTTL = 5 * time.Minute

// insightSchema is what the model must return for one category. Validation
// happens inside the provider before the content reaches parsing.
var insightSchema = &llm.Schema{
	Name:        "category_insight",
	Description: "Structured analysis of one business canvas category",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"strengths": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"weaknesses": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"recommendations": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"confidence_analysis": map[string]any{"type": "string"},
			"knowledge_analysis":  map[string]any{"type": "string"},
		},
		"required": []any{
			"strengths", "weaknesses", "recommendations",
			"confidence_analysis", "knowledge_analysis",
		},
		"additionalProperties": false,
	},
}

const insightSystemPrompt = "You are a business analysis expert. Your task is to analyze business canvas data and provide insights in valid JSON format. Focus on being specific, actionable, and data-driven in your analysis."

type insightPayload struct {
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	Recommendations    []string `json:"recommendations"`
	ConfidenceAnalysis string   `json:"confidence_analysis"`
	KnowledgeAnalysis  string   `json:"knowledge_analysis"`
}

// InsightService runs the per-category AI analysis. Categories are analyzed
// concurrently with a bounded worker count; a failed category yields a
// placeholder row so the report never renders half-empty.
type InsightService struct {
	InsightRepo    *repository.InsightRepository
	AnswerRepo     *repository.AnswerRepository
	AssessmentRepo *repository.AssessmentRepository
	Provider       llm.Provider
	Redis          *redis.Client
	Cfg            *config.Config

	// inProgress mirrors the Redis generating flag for runs owned by this
	// process, so status and mutual exclusion still work without Redis.
	mu         sync.Mutex
	inProgress map[string]struct{}
}

func NewInsightService(
	insightRepo *repository.InsightRepository,
	answerRepo *repository.AnswerRepository,
	assessmentRepo *repository.AssessmentRepository,
	provider llm.Provider,
	redisClient *redis.Client,
	cfg *config.Config,
) *InsightService {
	return &InsightService{
		InsightRepo:    insightRepo,
		AnswerRepo:     answerRepo,
		AssessmentRepo: assessmentRepo,
		Provider:       provider,
		Redis:          redisClient,
		Cfg:            cfg,
		inProgress:     make(map[string]struct{}),
	}
}

func buildCategoryPrompt(category string, answers []model.Answer) string {
	var responses strings.Builder
	confidence := make([]string, 0, len(answers))
	knowledge := make([]string, 0, len(answers))
	for _, a := range answers {
		responses.WriteString("- ")
		responses.WriteString(a.Text)
		responses.WriteString("\n")
		confidence = append(confidence, fmt.Sprintf("%d", a.ConfidenceValue))
		knowledge = append(knowledge, fmt.Sprintf("%d", a.KnowledgeValue))
	}

	return fmt.Sprintf(`You are analyzing a business canvas category. Here's the data:

Category: %s

Responses:
%s
Metrics:
- Confidence Scores: %s
- Knowledge Scores: %s

Based on this data, provide a structured analysis in the following JSON format:

{
  "strengths": [
    "List specific strengths identified from the responses and high scores"
  ],
  "weaknesses": [
    "List specific areas for improvement based on responses and low scores"
  ],
  "recommendations": [
    "Provide actionable recommendations for improvement"
  ],
  "confidence_analysis": "Provide a brief analysis of the confidence scores and what they indicate",
  "knowledge_analysis": "Provide a brief analysis of the knowledge scores and their implications"
}

Remember to:
1. Base strengths on high scores (7-10) and positive response content
2. Base weaknesses on lower scores (1-6) and gaps in responses
3. Make recommendations specific and actionable
4. Keep analysis concise but insightful

Return only valid JSON without any additional text or formatting.`,
		category,
		responses.String(),
		strings.Join(confidence, ", "),
		strings.Join(knowledge, ", "))
}

// placeholderInsight is what a category gets when its analysis fails. The
// Failed flag lets clients offer a retry.
func placeholderInsight(category string) model.AIInsight {
	return model.AIInsight{
		Category:           category,
		Strengths:          model.StringList{},
		Weaknesses:         model.StringList{"Analysis failed - please try again"},
		Recommendations:    model.StringList{"Please retry the analysis"},
		ConfidenceAnalysis: "Analysis failed",
		KnowledgeAnalysis:  "Analysis failed",
		Failed:             true,
		GeneratedAt:        time.Now(),
	}
}

// analyzeCategory runs one model call bounded by the configured timeout and
// maps the structured result into an insight row. Failure of any kind
// degrades to the placeholder; it never propagates an error.
func (s *InsightService) analyzeCategory(ctx context.Context, category string, answers []model.Answer) model.AIInsight {
	if s.Provider == nil {
		monitoring.InsightGenerations.WithLabelValues("failed").Inc()
		logger.Log.Warn("no AI provider configured", zap.String("category", category))
		return placeholderInsight(category)
	}

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(s.Cfg.AI.TimeoutSeconds)*time.Second)
	defer cancel()

	start := time.Now()
	resp, err := s.Provider.Generate(callCtx, llm.Request{
		System: insightSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCategoryPrompt(category, answers)},
		},
		Schema:      insightSchema,
		MaxTokens:   s.Cfg.AI.MaxTokens,
		Temperature: s.Cfg.AI.Temperature,
	})
	monitoring.InsightDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		monitoring.InsightGenerations.WithLabelValues("failed").Inc()
		logger.Log.Warn("category analysis failed",
			zap.String("category", category),
			zap.Error(err))
		return placeholderInsight(category)
	}

	var payload insightPayload
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		monitoring.InsightGenerations.WithLabelValues("failed").Inc()
		logger.Log.Warn("category analysis returned unparseable content",
			zap.String("category", category),
			zap.Error(err))
		return placeholderInsight(category)
	}

	monitoring.InsightGenerations.WithLabelValues("success").Inc()
	return model.AIInsight{
		Category:           category,
		Strengths:          model.StringList(payload.Strengths),
		Weaknesses:         model.StringList(payload.Weaknesses),
		Recommendations:    model.StringList(payload.Recommendations),
		ConfidenceAnalysis: payload.ConfidenceAnalysis,
		KnowledgeAnalysis:  payload.KnowledgeAnalysis,
		GeneratedAt:        time.Now(),
	}
}

// Generate analyzes every answered category and replaces the stored insight
// set. Concurrency is bounded by the configured worker count; one category's
// failure does not stop the others.
func (s *InsightService) Generate(ctx context.Context, assessmentID string, userID uint) error {
	answers, err := s.AnswerRepo.ListByAssessment(assessmentID)
	if err != nil {
		return err
	}
	if len(answers) == 0 {
		return nil
	}

	byCategory := make(map[string][]model.Answer)
	for _, a := range answers {
		byCategory[a.Category] = append(byCategory[a.Category], a)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	insights := make([]model.AIInsight, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Cfg.AI.Concurrency)
	for i, category := range categories {
		g.Go(func() error {
			insights[i] = s.analyzeCategory(gctx, category, byCategory[category])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return s.InsightRepo.Replace(assessmentID, userID, insights)
}

func generatingKey(assessmentID string) string {
	return "insights:generating:" + assessmentID
}

// tryAcquireLock claims exclusive generation for an assessment. Redis makes
// the claim visible across instances; the in-process flag covers runs started
// by this process, so a single instance without Redis still gets mutual
// exclusion.
func (s *InsightService) tryAcquireLock(ctx context.Context, assessmentID string) bool {
	s.mu.Lock()
	if _, busy := s.inProgress[assessmentID]; busy {
		s.mu.Unlock()
		return false
	}
	s.inProgress[assessmentID] = struct{}{}
	s.mu.Unlock()

	if s.Redis == nil {
		return true
	}
	ok, err := s.Redis.SetNX(ctx, generatingKey(assessmentID), "1", generatingLockTTL).Result()
	if err != nil || !ok {
		s.mu.Lock()
		delete(s.inProgress, assessmentID)
		s.mu.Unlock()
		if err != nil {
			logger.Log.Warn("generation lock acquire failed",
				zap.String("assessmentId", assessmentID),
				zap.Error(err))
		}
		return false
	}
	return true
}

func (s *InsightService) releaseLock(ctx context.Context, assessmentID string) {
	s.mu.Lock()
	delete(s.inProgress, assessmentID)
	s.mu.Unlock()

	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, generatingKey(assessmentID)).Err(); err != nil {
		logger.Log.Warn("generation lock release failed",
			zap.String("assessmentId", assessmentID),
			zap.Error(err))
	}
}

func (s *InsightService) isGenerating(ctx context.Context, assessmentID string) bool {
	s.mu.Lock()
	_, busy := s.inProgress[assessmentID]
	s.mu.Unlock()
	if busy {
		return true
	}

	if s.Redis == nil {
		return false
	}
	n, err := s.Redis.Exists(ctx, generatingKey(assessmentID)).Result()
	return err == nil && n > 0
}

// generateInBackground runs generation detached from the request, holding the
// lock for the duration.
func (s *InsightService) generateInBackground(assessmentID string, userID uint) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), generatingLockTTL)
		defer cancel()
		defer s.releaseLock(ctx, assessmentID)

		if err := s.Generate(ctx, assessmentID, userID); err != nil {
			logger.Log.Error("insight generation failed",
				zap.String("assessmentId", assessmentID),
				zap.Error(err))
		}
	}()
}

// GetOrGenerate returns the stored insight set, lazily kicking off generation
// when a completed assessment has none yet. The returned status tells clients
// whether to poll.
func (s *InsightService) GetOrGenerate(ctx context.Context, userID uint, assessmentID string) (InsightStatus, []model.AIInsight, error) {
	assessment, err := s.AssessmentRepo.FindByIDForUser(assessmentID, userID)
	if err != nil {
		return "", nil, util.ErrAssessmentNotFound
	}
	if assessment.Status != model.StatusCompleted {
		return "", nil, util.ErrAssessmentNotComplete
	}

	// An in-flight run wins over stored rows: after a regenerate the old set
	// is stale, and pollers need to see the transition back to ready.
	if s.isGenerating(ctx, assessmentID) {
		return InsightStatusGenerating, nil, nil
	}

	insights, err := s.InsightRepo.ListByAssessment(assessmentID, userID)
	if err != nil {
		return "", nil, err
	}
	if len(insights) > 0 {
		return InsightStatusReady, insights, nil
	}

	count, err := s.AnswerRepo.CountByAssessment(assessmentID)
	if err != nil {
		return "", nil, err
	}
	if count == 0 {
		return InsightStatusAbsent, nil, nil
	}

	if s.tryAcquireLock(ctx, assessmentID) {
		s.generateInBackground(assessmentID, userID)
	}
	return InsightStatusGenerating, nil, nil
}

// Regenerate discards the current insight set and re-runs the analysis.
// Returns ErrGenerationInFlight when a run is already holding the lock.
func (s *InsightService) Regenerate(ctx context.Context, userID uint, assessmentID string) error {
	assessment, err := s.AssessmentRepo.FindByIDForUser(assessmentID, userID)
	if err != nil {
		return util.ErrAssessmentNotFound
	}
	if assessment.Status != model.StatusCompleted {
		return util.ErrAssessmentNotComplete
	}

	if !s.tryAcquireLock(ctx, assessmentID) {
		return util.ErrGenerationInFlight
	}
	s.generateInBackground(assessmentID, userID)
	return nil
}
