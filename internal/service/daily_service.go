package service

import (
	"context"
	"time"

	"progress-service/internal/daily"
	"progress-service/internal/event"
	"progress-service/internal/models"
	"progress-service/internal/repository"
	"progress-service/internal/scoring"
)

// DailyService assigns each user one question per calendar day. The selection
// itself is the pure daily.Next; this service only loads the inputs and
// persists the chosen state on the user document.
type DailyService struct {
	users     *repository.UserRepository
	questions *repository.QuestionRepository
	engine    *scoring.Engine
	publisher *event.Publisher
	locks     *userLocks
	now       func() time.Time
}

func NewDailyService(users *repository.UserRepository, questions *repository.QuestionRepository, engine *scoring.Engine, publisher *event.Publisher) *DailyService {
	return &DailyService{
		users:     users,
		questions: questions,
		engine:    engine,
		publisher: publisher,
		locks:     newUserLocks(),
		now:       time.Now,
	}
}

// TodayQuestion is the daily assignment surfaced to the client.
type TodayQuestion struct {
	Question        *models.Question `json:"question"`
	AnsweredToday   bool             `json:"answeredToday"`
	AssignedForDate time.Time        `json:"assignedForDate"`
}

// Today returns the user's question of the day, drawing and persisting a new
// selection when none exists for the current day. The draw is deterministic
// per (user, day), so repeated calls and other devices agree.
func (s *DailyService) Today(ctx context.Context, userID string) (*TodayQuestion, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	today := scoring.DayOf(s.now(), s.engine.Location())
	sel, ok := daily.Next(questions, user.DailyQuestion, today, daily.Seed(today, userID))
	if !ok {
		return nil, repository.ErrQuestionNotFound
	}

	fresh := user.DailyQuestion == nil || !user.DailyQuestion.Date.Equal(sel.Date) || user.DailyQuestion.QuestionID != sel.QuestionID
	if fresh {
		if err := s.users.SetDailyQuestion(ctx, userID, &sel); err != nil {
			return nil, err
		}
		s.publisher.Publish(event.DailyQuestionSelected, map[string]interface{}{
			"userId":     userID,
			"questionId": sel.QuestionID,
			"date":       sel.Date,
		})
	}

	question, err := s.questions.FindByID(ctx, sel.QuestionID)
	if err != nil {
		return nil, err
	}
	return &TodayQuestion{
		Question:        question,
		AnsweredToday:   daily.AnsweredToday(&sel, today),
		AssignedForDate: sel.Date,
	}, nil
}
