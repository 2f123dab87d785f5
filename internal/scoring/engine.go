package scoring

import (
	"errors"
	"time"

	"progress-service/internal/activity"
	"progress-service/internal/models"
)

var ErrInvalidAnswerIndex = errors.New("selected answer index out of range")

// Engine computes user-progress transitions. It holds only the time zone used
// for day truncation; every method is a pure function of its arguments.
type Engine struct {
	loc *time.Location
}

func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{loc: loc}
}

// Location returns the zone governing day boundaries.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// ApplyAnswer scores one answer against a copy of the user record and returns
// the updated record together with the appended activity event. It performs no
// I/O; persisting both results is the caller's job.
//
// TotalQuestionsAnswered increments on every attempt, including repeats of an
// already-completed question. That matches the shipped behavior and is kept
// deliberately even though it inflates the attempt count on revisits.
// Points, CorrectAnswers and CompletedQuestions are idempotent: a question
// already in CompletedQuestions is never scored a second time.
func (e *Engine) ApplyAnswer(user models.User, question models.Question, selectedIndex int, activityType models.ActivityType, now time.Time) (models.User, models.ActivityEvent, error) {
	if selectedIndex < 0 || selectedIndex >= len(question.Options) {
		return models.User{}, models.ActivityEvent{}, ErrInvalidAnswerIndex
	}

	isCorrect := selectedIndex == question.CorrectOptionIndex

	next := user
	next.CompletedQuestions = append([]string(nil), user.CompletedQuestions...)
	next.TotalQuestionsAnswered++

	result := models.ResultIncorrect
	if isCorrect {
		result = models.ResultCorrect
		if !next.HasCompleted(question.ID) {
			next.CorrectAnswers++
			next.Points += question.Points
			next.CompletedQuestions = append(next.CompletedQuestions, question.ID)
		}
		// Streak derives from the last correct answer already in history,
		// before the event below is appended.
		lastDay := lastCorrectDay(user.ActivityHistory, e.loc)
		next.Streak = NextStreak(user.Streak, lastDay, DayOf(now, e.loc))
	}

	event := models.ActivityEvent{
		Date:       now,
		Type:       activityType,
		QuestionID: question.ID,
		Result:     result,
	}
	next.ActivityHistory = activity.Append(user.ActivityHistory, event)
	next.LastLoginAt = now

	return next, event, nil
}
