package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringList stores a []string as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// AIInsight is the persisted per-category analysis of one assessment. The
// composite unique index backs the upsert; regeneration overwrites in place
// instead of delete-then-insert.
// swagger:model AIInsight
type AIInsight struct {
	UUIDBase
	AssessmentID       string     `gorm:"type:varchar(36);not null;uniqueIndex:uq_insight_category,priority:1" json:"assessmentId"`
	UserID             uint       `gorm:"not null;uniqueIndex:uq_insight_category,priority:2" json:"userId"`
	Category           string     `gorm:"size:100;not null;uniqueIndex:uq_insight_category,priority:3" json:"category"`
	Strengths          StringList `gorm:"type:json" json:"strengths"`
	Weaknesses         StringList `gorm:"type:json" json:"weaknesses"`
	Recommendations    StringList `gorm:"type:json" json:"recommendations"`
	ConfidenceAnalysis string     `gorm:"type:text" json:"confidenceAnalysis"`
	KnowledgeAnalysis  string     `gorm:"type:text" json:"knowledgeAnalysis"`
	Failed             bool       `gorm:"default:false" json:"failed"`
	GeneratedAt        time.Time  `json:"generatedAt"`
}

func (AIInsight) TableName() string {
	return "ai_insights"
}
