package service

import (
	"bizcanvas_backend/internal/model"
	"bizcanvas_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssessmentService(e *testEnv) *AssessmentService {
	saver := NewAnswerSaver(time.Hour, e.answerRepo.Upsert)
	return NewAssessmentService(e.assessmentRepo, e.answerRepo, saver)
}

func TestAssessmentCreateDefaultsTitle(t *testing.T) {
	e := newTestEnv(t)
	svc := newAssessmentService(e)

	a, err := svc.Create(1, CreateAssessmentRequest{})
	require.NoError(t, err)

	assert.Equal(t, "Business Self-Assessment", a.Title)
	assert.Equal(t, model.StatusDraft, a.Status)
	assert.NotEmpty(t, a.ID)
}

func TestAssessmentCompleteIsOneWay(t *testing.T) {
	e := newTestEnv(t)
	svc := newAssessmentService(e)
	assessment := e.createAssessment(t, 1, model.StatusDraft)

	completed, err := svc.Complete(1, assessment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	firstCompletedAt := *completed.CompletedAt

	// Completing again is a no-op, not an error, and keeps the timestamp.
	again, err := svc.Complete(1, assessment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, again.Status)
	require.NotNil(t, again.CompletedAt)
	assert.WithinDuration(t, firstCompletedAt, *again.CompletedAt, time.Second)
}

func TestAssessmentCompleteUnknownID(t *testing.T) {
	e := newTestEnv(t)
	svc := newAssessmentService(e)

	_, err := svc.Complete(1, "no-such-id")
	assert.ErrorIs(t, err, util.ErrAssessmentNotFound)
}

func TestAssessmentListScopedToUser(t *testing.T) {
	e := newTestEnv(t)
	svc := newAssessmentService(e)

	e.createAssessment(t, 1, model.StatusDraft)
	e.createAssessment(t, 2, model.StatusDraft)

	mine, err := svc.List(1, "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
