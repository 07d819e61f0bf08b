package repository

import (
	"bizcanvas_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insightFor(category string) model.AIInsight {
	return model.AIInsight{
		Category:           category,
		Strengths:          model.StringList{"clear value proposition"},
		Weaknesses:         model.StringList{"narrow segment focus"},
		Recommendations:    model.StringList{"interview more customers"},
		ConfidenceAnalysis: "Scores suggest moderate confidence.",
		KnowledgeAnalysis:  "Scores suggest growing knowledge.",
		GeneratedAt:        time.Now(),
	}
}

func TestInsightReplaceNeverDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewInsightRepository(db)
	assessment := createDraftAssessment(t, db, 1)

	set := []model.AIInsight{insightFor("Channels"), insightFor("Revenue Streams")}
	require.NoError(t, repo.Replace(assessment.ID, 1, set))

	// Regenerating the same categories must overwrite, not accumulate.
	again := []model.AIInsight{insightFor("Channels"), insightFor("Revenue Streams")}
	again[0].Strengths = model.StringList{"strong retail presence"}
	require.NoError(t, repo.Replace(assessment.ID, 1, again))

	stored, err := repo.ListByAssessment(assessment.ID, 1)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, "Channels", stored[0].Category)
	assert.Equal(t, model.StringList{"strong retail presence"}, stored[0].Strengths)
	assert.Equal(t, "Revenue Streams", stored[1].Category)
}

func TestInsightReplaceRemovesStaleCategories(t *testing.T) {
	db := newTestDB(t)
	repo := NewInsightRepository(db)
	assessment := createDraftAssessment(t, db, 1)

	require.NoError(t, repo.Replace(assessment.ID, 1, []model.AIInsight{
		insightFor("Channels"), insightFor("Key Partners"),
	}))

	// The new set no longer covers Key Partners.
	require.NoError(t, repo.Replace(assessment.ID, 1, []model.AIInsight{
		insightFor("Channels"),
	}))

	stored, err := repo.ListByAssessment(assessment.ID, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Channels", stored[0].Category)
}

func TestInsightListOrderedByCategory(t *testing.T) {
	db := newTestDB(t)
	repo := NewInsightRepository(db)
	assessment := createDraftAssessment(t, db, 1)

	require.NoError(t, repo.Replace(assessment.ID, 1, []model.AIInsight{
		insightFor("Revenue Streams"), insightFor("Channels"), insightFor("Key Partners"),
	}))

	stored, err := repo.ListByAssessment(assessment.ID, 1)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	assert.Equal(t, "Channels", stored[0].Category)
	assert.Equal(t, "Key Partners", stored[1].Category)
	assert.Equal(t, "Revenue Streams", stored[2].Category)
}

func TestInsightStringListRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewInsightRepository(db)
	assessment := createDraftAssessment(t, db, 1)

	in := insightFor("Cost Structure")
	in.Weaknesses = model.StringList{"Analysis failed - please try again"}
	in.Failed = true
	require.NoError(t, repo.Replace(assessment.ID, 1, []model.AIInsight{in}))

	stored, err := repo.ListByAssessment(assessment.ID, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Failed)
	assert.Equal(t, model.StringList{"Analysis failed - please try again"}, stored[0].Weaknesses)
}
