package repository

import (
	"bizcanvas_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerUpsertOverwritesInPlace(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnswerRepository(db)
	assessment := createDraftAssessment(t, db, 1)

	first := &model.Answer{
		AssessmentID:    assessment.ID,
		QuestionID:      7,
		Text:            "initial draft of the answer",
		ConfidenceValue: 4,
		KnowledgeValue:  5,
		Category:        "Value Proposition",
	}
	require.NoError(t, repo.Upsert(first))

	second := &model.Answer{
		AssessmentID:    assessment.ID,
		QuestionID:      7,
		Text:            "revised answer after more thought",
		ConfidenceValue: 8,
		KnowledgeValue:  9,
		Category:        "Value Proposition",
	}
	require.NoError(t, repo.Upsert(second))

	answers, err := repo.ListByAssessment(assessment.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1, "upsert must leave exactly one row per question")

	assert.Equal(t, "revised answer after more thought", answers[0].Text)
	assert.Equal(t, 8, answers[0].ConfidenceValue)
	assert.Equal(t, 9, answers[0].KnowledgeValue)
}

func TestAnswerUpsertKeepsQuestionsSeparate(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnswerRepository(db)
	assessment := createDraftAssessment(t, db, 1)

	for qid := uint(1); qid <= 3; qid++ {
		require.NoError(t, repo.Upsert(&model.Answer{
			AssessmentID:    assessment.ID,
			QuestionID:      qid,
			Text:            "answer",
			ConfidenceValue: 5,
			KnowledgeValue:  5,
			Category:        "Channels",
		}))
	}

	count, err := repo.CountByAssessment(assessment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestAnswerUpsertScopedToAssessment(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnswerRepository(db)
	a1 := createDraftAssessment(t, db, 1)
	a2 := createDraftAssessment(t, db, 2)

	require.NoError(t, repo.Upsert(&model.Answer{
		AssessmentID: a1.ID, QuestionID: 1, Text: "mine",
		ConfidenceValue: 5, KnowledgeValue: 5, Category: "Channels",
	}))
	require.NoError(t, repo.Upsert(&model.Answer{
		AssessmentID: a2.ID, QuestionID: 1, Text: "theirs",
		ConfidenceValue: 6, KnowledgeValue: 6, Category: "Channels",
	}))

	mine, err := repo.ListByAssessment(a1.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].Text)
}
