package model

// ReportExport records a printable report document pushed to object storage.
// swagger:model ReportExport
type ReportExport struct {
	UUIDBase
	AssessmentID string `gorm:"type:varchar(36);index;not null" json:"assessmentId"`
	UserID       uint   `gorm:"index;not null" json:"userId"`
	ObjectKey    string `gorm:"size:255;not null" json:"objectKey"`
	URL          string `gorm:"size:512" json:"url"`
	Format       string `gorm:"size:20;default:'json'" json:"format"`
}

func (ReportExport) TableName() string {
	return "report_exports"
}
