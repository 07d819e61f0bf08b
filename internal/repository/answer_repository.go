package repository

import (
	"bizcanvas_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// Upsert writes an answer keyed by (assessment_id, question_id). A second
// write for the same question overwrites text, scores and category in place,
// leaving exactly one row.
func (r *AnswerRepository) Upsert(a *model.Answer) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "assessment_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"text", "confidence_value", "knowledge_value", "category", "updated_at",
		}),
	}).Create(a).Error
}

func (r *AnswerRepository) ListByAssessment(assessmentID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Order("created_at asc").
		Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) CountByAssessment(assessmentID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Answer{}).
		Where("assessment_id = ?", assessmentID).
		Count(&count).Error
	return count, err
}
