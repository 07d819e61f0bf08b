package repository

import (
	"bizcanvas_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InsightRepository struct {
	DB *gorm.DB
}

func NewInsightRepository(db *gorm.DB) *InsightRepository {
	return &InsightRepository{DB: db}
}

func (r *InsightRepository) ListByAssessment(assessmentID string, userID uint) ([]model.AIInsight, error) {
	var insights []model.AIInsight
	err := r.DB.Where("assessment_id = ? AND user_id = ?", assessmentID, userID).
		Order("category asc").
		Find(&insights).Error
	return insights, err
}

// Replace stores a fresh insight set for an assessment. Existing categories
// are updated in place through the unique key; categories no longer present
// in the new set are removed. Runs in one transaction so a concurrent reader
// never observes duplicates.
func (r *InsightRepository) Replace(assessmentID string, userID uint, insights []model.AIInsight) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		categories := make([]string, 0, len(insights))
		for i := range insights {
			insights[i].AssessmentID = assessmentID
			insights[i].UserID = userID
			categories = append(categories, insights[i].Category)

			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "assessment_id"}, {Name: "user_id"}, {Name: "category"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"strengths", "weaknesses", "recommendations",
					"confidence_analysis", "knowledge_analysis",
					"failed", "generated_at", "updated_at",
				}),
			}).Create(&insights[i]).Error
			if err != nil {
				return err
			}
		}

		stale := tx.Where("assessment_id = ? AND user_id = ?", assessmentID, userID)
		if len(categories) > 0 {
			stale = stale.Where("category NOT IN ?", categories)
		}
		return stale.Delete(&model.AIInsight{}).Error
	})
}

func (r *InsightRepository) CountByAssessment(assessmentID string, userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AIInsight{}).
		Where("assessment_id = ? AND user_id = ?", assessmentID, userID).
		Count(&count).Error
	return count, err
}
