package model

import (
	"time"
)

type AssessmentStatus string

const (
	StatusDraft     AssessmentStatus = "draft"
	StatusCompleted AssessmentStatus = "completed"
)

// Assessment groups one user's answers. Status moves draft -> completed once;
// there is no reopen transition.
// swagger:model Assessment
type Assessment struct {
	UUIDBase
	UserID      uint             `gorm:"index;not null" json:"userId"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Status      AssessmentStatus `gorm:"size:20;not null;default:'draft'" json:"status"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// Answer is one response to one question: free text plus two 1-10 ratings.
// The composite unique index makes the per-question upsert a real constraint
// rather than an application convention.
// swagger:model Answer
type Answer struct {
	UUIDBase
	AssessmentID    string `gorm:"type:varchar(36);not null;uniqueIndex:uq_assessment_question,priority:1" json:"assessmentId"`
	QuestionID      uint   `gorm:"not null;uniqueIndex:uq_assessment_question,priority:2" json:"questionId"`
	Text            string `gorm:"type:text" json:"text"`
	ConfidenceValue int    `gorm:"not null" json:"confidenceValue"`
	KnowledgeValue  int    `gorm:"not null" json:"knowledgeValue"`
	Category        string `gorm:"size:100;index;not null" json:"category"`
}

func (Answer) TableName() string {
	return "answers"
}
