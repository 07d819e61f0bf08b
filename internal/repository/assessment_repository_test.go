package repository

import (
	"bizcanvas_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAssessmentLookupScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db)
	assessment := createDraftAssessment(t, db, 1)

	found, err := repo.FindByIDForUser(assessment.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, assessment.ID, found.ID)

	// Another user's lookup behaves exactly like a missing record.
	_, err = repo.FindByIDForUser(assessment.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAssessmentListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db)

	draft := createDraftAssessment(t, db, 1)
	done := createDraftAssessment(t, db, 1)
	now := time.Now()
	done.Status = model.StatusCompleted
	done.CompletedAt = &now
	require.NoError(t, repo.Update(done))

	drafts, err := repo.ListByUser(1, model.StatusDraft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.ID, drafts[0].ID)

	all, err := repo.ListByUser(1, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAssessmentExports(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db)
	assessment := createDraftAssessment(t, db, 1)

	require.NoError(t, repo.CreateExport(&model.ReportExport{
		AssessmentID: assessment.ID,
		UserID:       1,
		ObjectKey:    "reports/" + assessment.ID + "/snapshot.json",
		URL:          "/exports/reports/" + assessment.ID + "/snapshot.json",
		Format:       "json",
	}))

	exports, err := repo.ListExports(assessment.ID, 1)
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, "json", exports[0].Format)

	// Exports are owner-scoped too.
	other, err := repo.ListExports(assessment.ID, 2)
	require.NoError(t, err)
	assert.Empty(t, other)
}
