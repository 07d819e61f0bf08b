package service

import (
	"bizcanvas_backend/internal/model"
	"bizcanvas_backend/internal/repository"
	"bizcanvas_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
	AnswerRepo     *repository.AnswerRepository
	Saver          *AnswerSaver
}

func NewAssessmentService(
	assessmentRepo *repository.AssessmentRepository,
	answerRepo *repository.AnswerRepository,
	saver *AnswerSaver,
) *AssessmentService {
	return &AssessmentService{
		AssessmentRepo: assessmentRepo,
		AnswerRepo:     answerRepo,
		Saver:          saver,
	}
}

type CreateAssessmentRequest struct {
	Title string `json:"title"`
}

func (s *AssessmentService) Create(userID uint, req CreateAssessmentRequest) (*model.Assessment, error) {
	title := req.Title
	if title == "" {
		title = "Business Self-Assessment"
	}
	assessment := &model.Assessment{
		UserID: userID,
		Title:  title,
		Status: model.StatusDraft,
	}
	if err := s.AssessmentRepo.Create(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *AssessmentService) List(userID uint, status model.AssessmentStatus) ([]model.Assessment, error) {
	return s.AssessmentRepo.ListByUser(userID, status)
}

func (s *AssessmentService) Get(userID uint, id string) (*model.Assessment, error) {
	assessment, err := s.AssessmentRepo.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	return assessment, nil
}

// Complete flushes any answers still sitting in the autosave buffer and then
// moves the assessment from draft to completed. The transition is one way;
// completing an already completed assessment is a no-op, not an error.
func (s *AssessmentService) Complete(userID uint, id string) (*model.Assessment, error) {
	assessment, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if assessment.Status == model.StatusCompleted {
		return assessment, nil
	}

	if err := s.Saver.Flush(id); err != nil {
		return nil, err
	}

	now := time.Now()
	assessment.Status = model.StatusCompleted
	assessment.CompletedAt = &now
	if err := s.AssessmentRepo.Update(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}
