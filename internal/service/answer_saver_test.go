package service

import (
	"bizcanvas_backend/internal/model"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commitRecorder captures committed answers in order.
type commitRecorder struct {
	mu       sync.Mutex
	commits  []*model.Answer
	failWith error
}

func (r *commitRecorder) commit(a *model.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.commits = append(r.commits, a)
	return nil
}

func (r *commitRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.commits)
}

func (r *commitRecorder) last() *model.Answer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.commits) == 0 {
		return nil
	}
	return r.commits[len(r.commits)-1]
}

func stagedAnswer(assessmentID string, questionID uint, text string) *model.Answer {
	return &model.Answer{
		AssessmentID:    assessmentID,
		QuestionID:      questionID,
		Text:            text,
		ConfidenceValue: 5,
		KnowledgeValue:  5,
		Category:        "Channels",
	}
}

func TestSaverDebouncesRapidEdits(t *testing.T) {
	rec := &commitRecorder{}
	saver := NewAnswerSaver(50*time.Millisecond, rec.commit)

	for i := 0; i < 5; i++ {
		saver.Stage(stagedAnswer("a1", 1, "edit"))
	}
	saver.Stage(stagedAnswer("a1", 1, "final text"))

	require.Eventually(t, func() bool { return rec.count() == 1 },
		time.Second, 10*time.Millisecond,
		"a burst of edits must produce exactly one commit")

	assert.Equal(t, "final text", rec.last().Text)

	// Nothing else fires afterwards.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
}

func TestSaverKeysQuestionsIndependently(t *testing.T) {
	rec := &commitRecorder{}
	saver := NewAnswerSaver(30*time.Millisecond, rec.commit)

	saver.Stage(stagedAnswer("a1", 1, "question one"))
	saver.Stage(stagedAnswer("a1", 2, "question two"))

	require.Eventually(t, func() bool { return rec.count() == 2 },
		time.Second, 10*time.Millisecond)
}

func TestSaverFlushCommitsSynchronously(t *testing.T) {
	rec := &commitRecorder{}
	// Long debounce: nothing would fire on its own during the test.
	saver := NewAnswerSaver(time.Hour, rec.commit)

	saver.Stage(stagedAnswer("a1", 1, "buffered one"))
	saver.Stage(stagedAnswer("a1", 2, "buffered two"))
	saver.Stage(stagedAnswer("other", 1, "unrelated"))

	require.NoError(t, saver.Flush("a1"))

	assert.Equal(t, 2, rec.count(), "flush commits only the target assessment")
	assert.Equal(t, 0, saver.PendingCount("a1"))
	assert.Equal(t, 1, saver.PendingCount("other"))
}

func TestSaverFlushAll(t *testing.T) {
	rec := &commitRecorder{}
	saver := NewAnswerSaver(time.Hour, rec.commit)

	saver.Stage(stagedAnswer("a1", 1, "one"))
	saver.Stage(stagedAnswer("a2", 1, "two"))

	require.NoError(t, saver.FlushAll())
	assert.Equal(t, 2, rec.count())
	assert.Equal(t, 0, saver.PendingCount("a1"))
	assert.Equal(t, 0, saver.PendingCount("a2"))
}

func TestSaverSetDebounceAppliesToNewStages(t *testing.T) {
	rec := &commitRecorder{}
	saver := NewAnswerSaver(time.Hour, rec.commit)

	saver.SetDebounce(20 * time.Millisecond)
	saver.Stage(stagedAnswer("a1", 1, "after reload"))

	require.Eventually(t, func() bool { return rec.count() == 1 },
		time.Second, 10*time.Millisecond,
		"a shortened debounce must govern writes staged after the change")
	assert.Equal(t, "after reload", rec.last().Text)
}

func TestSaverStageAfterFlushStartsFresh(t *testing.T) {
	rec := &commitRecorder{}
	saver := NewAnswerSaver(30*time.Millisecond, rec.commit)

	saver.Stage(stagedAnswer("a1", 1, "first"))
	require.NoError(t, saver.Flush("a1"))
	require.Equal(t, 1, rec.count())

	saver.Stage(stagedAnswer("a1", 1, "second"))
	require.Eventually(t, func() bool { return rec.count() == 2 },
		time.Second, 10*time.Millisecond)
	assert.Equal(t, "second", rec.last().Text)
}
