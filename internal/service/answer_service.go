package service

import (
	"bizcanvas_backend/internal/model"
	"bizcanvas_backend/internal/repository"
	"bizcanvas_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// AnswerService handles answer capture against a draft assessment. Writes go
// through either the immediate path (Save) or the debounced autosave path
// (Stage); both resolve the question's category at write time so reporting
// never needs a join back to the question bank.
type AnswerService struct {
	AnswerRepo     *repository.AnswerRepository
	AssessmentRepo *repository.AssessmentRepository
	ReferenceRepo  *repository.ReferenceRepository
	Saver          *AnswerSaver
}

func NewAnswerService(
	answerRepo *repository.AnswerRepository,
	assessmentRepo *repository.AssessmentRepository,
	referenceRepo *repository.ReferenceRepository,
	saver *AnswerSaver,
) *AnswerService {
	return &AnswerService{
		AnswerRepo:     answerRepo,
		AssessmentRepo: assessmentRepo,
		ReferenceRepo:  referenceRepo,
		Saver:          saver,
	}
}

// AnswerRequest carries one answer write. Text may be empty (a rating-only
// answer); both ratings must be present.
type AnswerRequest struct {
	Text            string `json:"text"`
	ConfidenceValue *int   `json:"confidenceValue" binding:"required"`
	KnowledgeValue  *int   `json:"knowledgeValue" binding:"required"`
}

// clampScore pins a rating to the 1..10 scale instead of rejecting it, so a
// client slider glitch never loses the rest of the answer.
func clampScore(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

// buildAnswer validates ownership and draft status, resolves the question's
// category name, and assembles the row to write.
func (s *AnswerService) buildAnswer(userID uint, assessmentID string, questionID uint, req AnswerRequest) (*model.Answer, error) {
	assessment, err := s.AssessmentRepo.FindByIDForUser(assessmentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	if assessment.Status == model.StatusCompleted {
		return nil, util.ErrAssessmentCompleted
	}

	question, err := s.ReferenceRepo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if !question.IsActive {
		return nil, util.ErrQuestionNotFound
	}

	category, err := s.ReferenceRepo.FindCategoryByID(question.CategoryID)
	if err != nil {
		return nil, err
	}

	return &model.Answer{
		AssessmentID:    assessmentID,
		QuestionID:      questionID,
		Text:            req.Text,
		ConfidenceValue: clampScore(*req.ConfidenceValue),
		KnowledgeValue:  clampScore(*req.KnowledgeValue),
		Category:        category.Name,
	}, nil
}

// Save upserts an answer immediately. Saving the same question twice leaves a
// single row holding the latest text and scores.
func (s *AnswerService) Save(userID uint, assessmentID string, questionID uint, req AnswerRequest) (*model.Answer, error) {
	answer, err := s.buildAnswer(userID, assessmentID, questionID, req)
	if err != nil {
		return nil, err
	}
	if err := s.AnswerRepo.Upsert(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// Stage buffers an answer in the autosave debounce window instead of writing
// it straight through. Validation is identical to Save; only the commit is
// deferred.
func (s *AnswerService) Stage(userID uint, assessmentID string, questionID uint, req AnswerRequest) error {
	answer, err := s.buildAnswer(userID, assessmentID, questionID, req)
	if err != nil {
		return err
	}
	s.Saver.Stage(answer)
	return nil
}

func (s *AnswerService) ListByAssessment(userID uint, assessmentID string) ([]model.Answer, error) {
	if _, err := s.AssessmentRepo.FindByIDForUser(assessmentID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	return s.AnswerRepo.ListByAssessment(assessmentID)
}
