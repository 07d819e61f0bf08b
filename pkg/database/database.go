package database

import (
	"bizcanvas_backend/internal/config"
	"bizcanvas_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Question{},
		&model.Preamble{},
		&model.Assessment{},
		&model.Answer{},
		&model.AIInsight{},
		&model.ReportExport{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")

	seedQuestionBank(db)
	return nil
}

// seedQuestionBank installs the default business canvas question bank when the
// categories table is empty, so a fresh install can run an assessment end to end.
func seedQuestionBank(db *gorm.DB) {
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count > 0 {
		return
	}

	type seedCategory struct {
		name        string
		description string
		preamble    string
		questions   []string
	}

	seeds := []seedCategory{
		{
			name:        "Value Proposition",
			description: "The bundle of products and services that create value for your customers",
			preamble:    "Think about what makes your offering worth paying for, and for whom.",
			questions: []string{
				"What value do you deliver to your customers, and which problems are you helping them solve?",
				"What differentiates your offering from the alternatives your customers have today?",
			},
		},
		{
			name:        "Customer Segments",
			description: "The groups of people or organizations you aim to reach and serve",
			preamble:    "Consider who your most important customers really are.",
			questions: []string{
				"Who are your most important customers, and what do you know about them?",
				"Which segments could you serve tomorrow that you are not serving today?",
			},
		},
		{
			name:        "Revenue Streams",
			description: "The cash your business generates from each customer segment",
			preamble:    "Think about how, and how much, each segment currently pays.",
			questions: []string{
				"How does your business earn revenue today, and which streams matter most?",
				"What would your customers be willing to pay for that they currently are not?",
			},
		},
		{
			name:        "Key Resources",
			description: "The most important assets required to make your business model work",
			preamble:    "Consider the people, infrastructure, and intellectual property you rely on.",
			questions: []string{
				"Which resources are indispensable to delivering your value proposition?",
			},
		},
		{
			name:        "Key Activities",
			description: "The most important things your company must do to operate",
			preamble:    "Think about the activities your value proposition depends on.",
			questions: []string{
				"What are the critical activities your business performs week to week?",
			},
		},
		{
			name:        "Channels",
			description: "How you reach your customer segments to deliver your value proposition",
			preamble:    "Consider how customers discover, evaluate, and buy from you.",
			questions: []string{
				"Through which channels do your customers want to be reached?",
			},
		},
		{
			name:        "Customer Relationships",
			description: "The types of relationships you establish with each segment",
			preamble:    "Think about acquisition, retention, and growth per segment.",
			questions: []string{
				"What kind of relationship does each customer segment expect from you?",
			},
		},
		{
			name:        "Key Partners",
			description: "The network of suppliers and partners that make the model work",
			preamble:    "Consider who you depend on and why.",
			questions: []string{
				"Who are your key partners and suppliers, and what do you acquire from them?",
			},
		},
		{
			name:        "Cost Structure",
			description: "The most important costs incurred operating your business model",
			preamble:    "Think about which costs dominate and which are optional.",
			questions: []string{
				"What are the most significant costs in your business model?",
			},
		},
	}

	for order, sc := range seeds {
		cat := &model.Category{
			Name:         sc.name,
			Description:  sc.description,
			DisplayOrder: order + 1,
		}
		if err := db.Create(cat).Error; err != nil {
			log.Printf("seed category %q failed: %v", sc.name, err)
			continue
		}
		db.Create(&model.Preamble{CategoryID: cat.ID, Text: sc.preamble})
		for qOrder, text := range sc.questions {
			db.Create(&model.Question{
				CategoryID:   cat.ID,
				Text:         text,
				DisplayOrder: qOrder + 1,
				IsActive:     true,
			})
		}
	}
}
