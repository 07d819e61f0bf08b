package model

// Category groups questions and answers; its name is the aggregation key for
// the report charts and the AI analysis.
// swagger:model Category
type Category struct {
	BaseModel
	Name         string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
}

func (Category) TableName() string {
	return "categories"
}

// swagger:model Question
type Question struct {
	BaseModel
	CategoryID   uint   `gorm:"index;not null" json:"categoryId"`
	Text         string `gorm:"type:text;not null" json:"text"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`
}

func (Question) TableName() string {
	return "questions"
}

// Preamble is the intro copy shown before a category's questions.
// swagger:model Preamble
type Preamble struct {
	BaseModel
	CategoryID uint   `gorm:"index;not null" json:"categoryId"`
	Text       string `gorm:"type:text;not null" json:"text"`
}

func (Preamble) TableName() string {
	return "preambles"
}
