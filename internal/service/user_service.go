package service

import (
	"context"
	"time"

	"progress-service/internal/activity"
	"progress-service/internal/event"
	"progress-service/internal/models"
	"progress-service/internal/repository"
)

// UserService handles profile provisioning and the read side of a user's
// progress.
type UserService struct {
	users     *repository.UserRepository
	publisher *event.Publisher
	now       func() time.Time
}

func NewUserService(users *repository.UserRepository, publisher *event.Publisher) *UserService {
	return &UserService{users: users, publisher: publisher, now: time.Now}
}

// Provision creates the zeroed progress document for a new identity. This is
// the only place a user document comes into existence; scoring refuses to
// run against a missing profile.
func (s *UserService) Provision(ctx context.Context, id, email, name string) (*models.User, error) {
	user := models.NewUser(id, email, name, s.now())
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	s.publisher.Publish(event.UserProvisioned, map[string]interface{}{
		"userId": id,
	})
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// QuestionStatus is what a question detail view needs to know about the
// user's relationship to one question.
type QuestionStatus struct {
	Answered    bool                  `json:"answered"`
	Completed   bool                  `json:"completed"`
	Favorite    bool                  `json:"favorite"`
	LastAttempt *models.ActivityEvent `json:"lastAttempt,omitempty"`
}

// QuestionStatus reports whether the user answered, completed or starred the
// question, with the most recent attempt when one exists.
func (s *UserService) QuestionStatus(ctx context.Context, userID, questionID string) (*QuestionStatus, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &QuestionStatus{
		Answered:    activity.HasAnswered(user.ActivityHistory, questionID),
		Completed:   user.HasCompleted(questionID),
		Favorite:    user.HasFavorite(questionID),
		LastAttempt: activity.LastEventFor(user.ActivityHistory, questionID),
	}, nil
}

// History returns the user's activity ledger, most recent events last.
func (s *UserService) History(ctx context.Context, userID string) ([]models.ActivityEvent, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ActivityHistory, nil
}

func (s *UserService) AddFavorite(ctx context.Context, userID, questionID string) error {
	return s.users.AddFavorite(ctx, userID, questionID)
}

func (s *UserService) RemoveFavorite(ctx context.Context, userID, questionID string) error {
	return s.users.RemoveFavorite(ctx, userID, questionID)
}
