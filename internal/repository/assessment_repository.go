package repository

import (
	"bizcanvas_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

// FindByIDForUser scopes the lookup to the owner; a foreign assessment is
// indistinguishable from a missing one.
func (r *AssessmentRepository) FindByIDForUser(id string, userID uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) ListByUser(userID uint, status model.AssessmentStatus) ([]model.Assessment, error) {
	var as []model.Assessment
	query := r.DB.Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at desc").Find(&as).Error
	return as, err
}

func (r *AssessmentRepository) Update(a *model.Assessment) error {
	return r.DB.Save(a).Error
}

func (r *AssessmentRepository) CreateExport(e *model.ReportExport) error {
	return r.DB.Create(e).Error
}

func (r *AssessmentRepository) ListExports(assessmentID string, userID uint) ([]model.ReportExport, error) {
	var es []model.ReportExport
	err := r.DB.Where("assessment_id = ? AND user_id = ?", assessmentID, userID).
		Order("created_at desc").Find(&es).Error
	return es, err
}
