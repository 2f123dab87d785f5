package service

import (
	"context"
	"log"
	"time"

	"progress-service/internal/event"
	"progress-service/internal/models"
	"progress-service/internal/repository"
	"progress-service/internal/scoring"
)

// UserStore is the slice of the user repository the progress flow needs.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	ApplyAnswerUpdate(ctx context.Context, id string, upd repository.AnswerUpdate) error
}

// QuestionCatalog supplies immutable questions by id.
type QuestionCatalog interface {
	FindByID(ctx context.Context, id string) (*models.Question, error)
}

// ScoreBoard receives point updates for the cached leaderboard. Optional.
type ScoreBoard interface {
	UpdateScore(ctx context.Context, userID string, points int) error
}

// ScoredAnswer is what a submission returns to the transport layer.
type ScoredAnswer struct {
	IsCorrect          bool                 `json:"isCorrect"`
	PointsAwarded      int                  `json:"pointsAwarded"`
	AlreadyCompleted   bool                 `json:"alreadyCompleted"`
	Streak             int                  `json:"streak"`
	TotalPoints        int                  `json:"totalPoints"`
	Event              models.ActivityEvent `json:"event"`
	CorrectOptionIndex int                  `json:"correctOptionIndex"`
}

// ProgressService owns every mutation of a user's progress document.
// Submissions for one user are serialized through a per-user lock; the
// repository additionally persists counters as field-level merges so writes
// from another process commute instead of clobbering each other. Missing
// profiles are an error here, never lazily created: provisioning happens
// once at account creation through UserService.
type ProgressService struct {
	users     UserStore
	questions QuestionCatalog
	engine    *scoring.Engine
	board     ScoreBoard
	publisher *event.Publisher
	locks     *userLocks
	now       func() time.Time
}

func NewProgressService(users UserStore, questions QuestionCatalog, engine *scoring.Engine, board ScoreBoard, publisher *event.Publisher) *ProgressService {
	return &ProgressService{
		users:     users,
		questions: questions,
		engine:    engine,
		board:     board,
		publisher: publisher,
		locks:     newUserLocks(),
		now:       time.Now,
	}
}

// SubmitAnswer scores one answer and persists the transition. Returns
// scoring.ErrInvalidAnswerIndex, repository.ErrProfileNotFound or
// repository.ErrQuestionNotFound with no state change on the corresponding
// failures.
func (s *ProgressService) SubmitAnswer(ctx context.Context, userID, questionID string, selectedIndex int, activityType models.ActivityType) (*ScoredAnswer, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	next, ev, err := s.engine.ApplyAnswer(*user, *question, selectedIndex, activityType, now)
	if err != nil {
		return nil, err
	}

	upd := repository.AnswerUpdate{
		PointsDelta:  next.Points - user.Points,
		CorrectDelta: next.CorrectAnswers - user.CorrectAnswers,
		Streak:       next.Streak,
		Event:        ev,
		LastLoginAt:  now,
	}
	alreadyCompleted := user.HasCompleted(questionID)
	if ev.Result == models.ResultCorrect && !alreadyCompleted {
		upd.CompletedQuestionID = questionID
	}
	if activityType == models.ActivityDaily && user.DailyQuestion != nil && user.DailyQuestion.QuestionID == questionID {
		answered := *user.DailyQuestion
		answered.Answered = true
		upd.DailyQuestion = &answered
	}

	if err := s.users.ApplyAnswerUpdate(ctx, userID, upd); err != nil {
		return nil, err
	}

	if s.board != nil && upd.PointsDelta != 0 {
		if err := s.board.UpdateScore(ctx, userID, next.Points); err != nil {
			// The board is a display cache; the scored answer is already
			// durable, so the submission still succeeds.
			log.Printf("leaderboard cache update failed for user %s: %v", userID, err)
		}
	}

	s.publisher.Publish(event.AnswerScored, map[string]interface{}{
		"userId":     userID,
		"questionId": questionID,
		"result":     ev.Result,
		"points":     next.Points,
		"streak":     next.Streak,
		"timestamp":  now,
	})

	return &ScoredAnswer{
		IsCorrect:          ev.Result == models.ResultCorrect,
		PointsAwarded:      upd.PointsDelta,
		AlreadyCompleted:   alreadyCompleted,
		Streak:             next.Streak,
		TotalPoints:        next.Points,
		Event:              ev,
		CorrectOptionIndex: question.CorrectOptionIndex,
	}, nil
}
