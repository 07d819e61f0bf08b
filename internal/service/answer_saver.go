package service

import (
	"bizcanvas_backend/internal/model"
	"bizcanvas_backend/pkg/logger"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CommitFunc persists a staged answer. In production it is the answer
// repository's Upsert; tests substitute their own.
type CommitFunc func(a *model.Answer) error

type pendingWrite struct {
	answer *model.Answer
	timer  *time.Timer
}

// AnswerSaver buffers rapid answer edits so a burst of keystrokes on one
// question produces a single database write. Each (assessment, question) key
// holds at most one pending write; staging a newer edit replaces the buffered
// answer and restarts the debounce timer, so only the final state is
// committed. Flush commits everything for an assessment synchronously, which
// the completion path uses to guarantee no staged edit is lost.
type AnswerSaver struct {
	mu       sync.Mutex
	pending  map[string]*pendingWrite
	debounce time.Duration
	commit   CommitFunc
}

func NewAnswerSaver(debounce time.Duration, commit CommitFunc) *AnswerSaver {
	return &AnswerSaver{
		pending:  make(map[string]*pendingWrite),
		debounce: debounce,
		commit:   commit,
	}
}

// SetDebounce changes the debounce window for writes staged from now on.
// Already ticking timers keep their original deadline. Used by the config
// hot-reload path.
func (s *AnswerSaver) SetDebounce(d time.Duration) {
	s.mu.Lock()
	s.debounce = d
	s.mu.Unlock()
}

func saverKey(assessmentID string, questionID uint) string {
	return assessmentID + ":" + strconv.FormatUint(uint64(questionID), 10)
}

// Stage buffers an answer for deferred commit. Any previously staged write
// for the same question is cancelled and replaced.
func (s *AnswerSaver) Stage(a *model.Answer) {
	key := saverKey(a.AssessmentID, a.QuestionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if pw, ok := s.pending[key]; ok {
		pw.timer.Stop()
		pw.answer = a
		pw.timer.Reset(s.debounce)
		return
	}

	pw := &pendingWrite{answer: a}
	pw.timer = time.AfterFunc(s.debounce, func() {
		s.fire(key)
	})
	s.pending[key] = pw
}

// fire commits the pending write for key if it is still buffered. Stage may
// have replaced the entry between the timer firing and the lock being taken;
// the map check makes that race harmless.
func (s *AnswerSaver) fire(key string) {
	s.mu.Lock()
	pw, ok := s.pending[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	answer := pw.answer
	s.mu.Unlock()

	if err := s.commit(answer); err != nil {
		logger.Log.Error("autosave commit failed",
			zap.String("assessmentId", answer.AssessmentID),
			zap.Uint("questionId", answer.QuestionID),
			zap.Error(err))
	}
}

// Flush synchronously commits every pending write for the assessment. Used
// before completing an assessment so staged edits cannot be lost to a still
// ticking debounce timer. Returns the first commit error, after attempting
// all writes.
func (s *AnswerSaver) Flush(assessmentID string) error {
	prefix := assessmentID + ":"

	s.mu.Lock()
	var due []*model.Answer
	for key, pw := range s.pending {
		if strings.HasPrefix(key, prefix) {
			pw.timer.Stop()
			due = append(due, pw.answer)
			delete(s.pending, key)
		}
	}
	s.mu.Unlock()

	var firstErr error
	for _, a := range due {
		if err := s.commit(a); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FlushAll commits every buffered write regardless of assessment. Called on
// shutdown so in-flight edits survive a restart.
func (s *AnswerSaver) FlushAll() error {
	s.mu.Lock()
	var due []*model.Answer
	for key, pw := range s.pending {
		pw.timer.Stop()
		due = append(due, pw.answer)
		delete(s.pending, key)
	}
	s.mu.Unlock()

	var firstErr error
	for _, a := range due {
		if err := s.commit(a); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// PendingCount reports buffered writes for an assessment.
func (s *AnswerSaver) PendingCount(assessmentID string) int {
	prefix := assessmentID + ":"

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key := range s.pending {
		if strings.HasPrefix(key, prefix) {
			n++
		}
	}
	return n
}
