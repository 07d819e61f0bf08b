package service

import (
	"bizcanvas_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answer(category string, confidence, knowledge int) model.Answer {
	return model.Answer{
		Category:        category,
		ConfidenceValue: confidence,
		KnowledgeValue:  knowledge,
		Text:            "sample answer",
	}
}

func TestCategoryAveragesGrouping(t *testing.T) {
	answers := []model.Answer{
		answer("Market", 5, 6),
		answer("Market", 7, 8),
		answer("Product", 9, 9),
	}

	result := CalculateCategoryAverages(answers)
	require.Len(t, result, 2)

	market := result[0]
	assert.Equal(t, "Market", market.Category)
	assert.Equal(t, 6.0, market.AvgConfidence)
	assert.Equal(t, 7.0, market.AvgKnowledge)
	assert.Equal(t, 2, market.Count)

	product := result[1]
	assert.Equal(t, "Product", product.Category)
	assert.Equal(t, 9.0, product.AvgConfidence)
	assert.Equal(t, 1, product.Count)
}

func TestCategoryAveragesOneDecimalRounding(t *testing.T) {
	// 5+7+8 = 20, 20/3 = 6.666..., rounds to 6.7
	answers := []model.Answer{
		answer("Channels", 5, 4),
		answer("Channels", 7, 4),
		answer("Channels", 8, 5),
	}

	result := CalculateCategoryAverages(answers)
	require.Len(t, result, 1)

	assert.Equal(t, 6.7, result[0].AvgConfidence)
	assert.Equal(t, 4.3, result[0].AvgKnowledge)
}

func TestCategoryAveragesEmptyInput(t *testing.T) {
	result := CalculateCategoryAverages(nil)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestCategoryAveragesLexicographicOrder(t *testing.T) {
	answers := []model.Answer{
		answer("Revenue Streams", 5, 5),
		answer("Channels", 5, 5),
		answer("Key Partners", 5, 5),
	}

	result := CalculateCategoryAverages(answers)
	require.Len(t, result, 3)

	assert.Equal(t, "Channels", result[0].Category)
	assert.Equal(t, "Key Partners", result[1].Category)
	assert.Equal(t, "Revenue Streams", result[2].Category)
}
