package repository

import (
	"bizcanvas_backend/internal/model"

	"gorm.io/gorm"
)

// ReferenceRepository serves the static question bank: categories, questions
// and preambles. The assessment flow only reads it; admin endpoints mutate it.
type ReferenceRepository struct {
	DB *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{DB: db}
}

func (r *ReferenceRepository) ListCategories() ([]model.Category, error) {
	var cats []model.Category
	err := r.DB.Order("display_order asc, name asc").Find(&cats).Error
	return cats, err
}

func (r *ReferenceRepository) FindCategoryByID(id uint) (*model.Category, error) {
	var cat model.Category
	err := r.DB.First(&cat, id).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *ReferenceRepository) CreateCategory(cat *model.Category) error {
	return r.DB.Create(cat).Error
}

func (r *ReferenceRepository) UpdateCategory(cat *model.Category) error {
	return r.DB.Save(cat).Error
}

func (r *ReferenceRepository) DeleteCategory(id uint) error {
	return r.DB.Delete(&model.Category{}, id).Error
}

func (r *ReferenceRepository) ListActiveQuestions() ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("is_active = ?", true).
		Order("category_id asc, display_order asc").
		Find(&qs).Error
	return qs, err
}

func (r *ReferenceRepository) ListQuestionsByCategory(categoryID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("display_order asc").
		Find(&qs).Error
	return qs, err
}

func (r *ReferenceRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *ReferenceRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *ReferenceRepository) UpdateQuestion(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *ReferenceRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *ReferenceRepository) ListPreambles() ([]model.Preamble, error) {
	var ps []model.Preamble
	err := r.DB.Order("category_id asc").Find(&ps).Error
	return ps, err
}

func (r *ReferenceRepository) CreatePreamble(p *model.Preamble) error {
	return r.DB.Create(p).Error
}
