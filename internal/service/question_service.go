package service

import (
	"context"
	"time"

	"progress-service/internal/models"
	"progress-service/internal/repository"
)

type QuestionService struct {
	questions *repository.QuestionRepository
	now       func() time.Time
}

func NewQuestionService(questions *repository.QuestionRepository) *QuestionService {
	return &QuestionService{questions: questions, now: time.Now}
}

func (s *QuestionService) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return s.questions.List(ctx)
}

func (s *QuestionService) ListByAuthor(ctx context.Context, authorID string) ([]models.Question, error) {
	return s.questions.ListByAuthor(ctx, authorID)
}

func (s *QuestionService) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	return s.questions.FindByID(ctx, id)
}

// CreateQuestion stores a new question authored by createdBy. Unknown
// categories fall back to Uncategorized.
func (s *QuestionService) CreateQuestion(ctx context.Context, question *models.Question, createdBy string) error {
	question.CreatedBy = createdBy
	question.CreatedAt = s.now()
	question.Category = models.ParseCategory(string(question.Category))
	return s.questions.Create(ctx, question)
}
