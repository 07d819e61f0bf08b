package service

import (
	"bizcanvas_backend/internal/model"
	"bizcanvas_backend/internal/repository"
)

// ReferenceService exposes the question bank. The assessment flow treats it
// as read-only; mutations come from the admin routes only.
type ReferenceService struct {
	Repo *repository.ReferenceRepository
}

func NewReferenceService(repo *repository.ReferenceRepository) *ReferenceService {
	return &ReferenceService{Repo: repo}
}

func (s *ReferenceService) ListCategories() ([]model.Category, error) {
	return s.Repo.ListCategories()
}

func (s *ReferenceService) ListQuestions() ([]model.Question, error) {
	return s.Repo.ListActiveQuestions()
}

func (s *ReferenceService) ListPreambles() ([]model.Preamble, error) {
	return s.Repo.ListPreambles()
}

type CategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
}

func (s *ReferenceService) CreateCategory(req CategoryRequest) (*model.Category, error) {
	cat := &model.Category{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.Repo.CreateCategory(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *ReferenceService) UpdateCategory(id uint, req CategoryRequest) (*model.Category, error) {
	cat, err := s.Repo.FindCategoryByID(id)
	if err != nil {
		return nil, err
	}

	cat.Name = req.Name
	cat.Description = req.Description
	cat.DisplayOrder = req.DisplayOrder
	if err := s.Repo.UpdateCategory(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *ReferenceService) DeleteCategory(id uint) error {
	return s.Repo.DeleteCategory(id)
}

type QuestionRequest struct {
	CategoryID   uint   `json:"categoryId" binding:"required"`
	Text         string `json:"text" binding:"required"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
}

func (s *ReferenceService) CreateQuestion(req QuestionRequest) (*model.Question, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	q := &model.Question{
		CategoryID:   req.CategoryID,
		Text:         req.Text,
		DisplayOrder: req.DisplayOrder,
		IsActive:     active,
	}
	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *ReferenceService) UpdateQuestion(id uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.Repo.FindQuestionByID(id)
	if err != nil {
		return nil, err
	}

	q.CategoryID = req.CategoryID
	q.Text = req.Text
	q.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}
	if err := s.Repo.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *ReferenceService) DeleteQuestion(id uint) error {
	return s.Repo.DeleteQuestion(id)
}

type PreambleRequest struct {
	CategoryID uint   `json:"categoryId" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

func (s *ReferenceService) CreatePreamble(req PreambleRequest) (*model.Preamble, error) {
	p := &model.Preamble{
		CategoryID: req.CategoryID,
		Text:       req.Text,
	}
	if err := s.Repo.CreatePreamble(p); err != nil {
		return nil, err
	}
	return p, nil
}
