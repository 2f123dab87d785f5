// Package activity answers membership queries over a user's append-only
// answer history. It never deduplicates: idempotent scoring is enforced by
// the scoring engine through CompletedQuestions, not by the ledger.
package activity

import "progress-service/internal/models"

// HasAnswered reports whether any event in the history references the
// question, regardless of result.
func HasAnswered(history []models.ActivityEvent, questionID string) bool {
	for _, ev := range history {
		if ev.QuestionID == questionID {
			return true
		}
	}
	return false
}

// LastEventFor returns the most recent event for the question, or nil when
// the question was never attempted. Events with identical timestamps are
// resolved in favor of the one appended last, which decides what "your last
// attempt" displays show.
func LastEventFor(history []models.ActivityEvent, questionID string) *models.ActivityEvent {
	var last *models.ActivityEvent
	for i := range history {
		ev := &history[i]
		if ev.QuestionID != questionID {
			continue
		}
		if last == nil || !ev.Date.Before(last.Date) {
			last = ev
		}
	}
	if last == nil {
		return nil
	}
	out := *last
	return &out
}

// Append returns a new history slice with the event added. The input slice is
// not modified.
func Append(history []models.ActivityEvent, event models.ActivityEvent) []models.ActivityEvent {
	out := make([]models.ActivityEvent, len(history), len(history)+1)
	copy(out, history)
	return append(out, event)
}
