package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"progress-service/internal/models"
)

var ErrQuestionNotFound = errors.New("question not found")

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find question %s: %w", id, err)
	}
	return &question, nil
}

// List returns all questions, newest first.
func (r *QuestionRepository) List(ctx context.Context) ([]models.Question, error) {
	return r.find(ctx, bson.M{})
}

// ListByAuthor returns the questions created by one user, newest first.
func (r *QuestionRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.Question, error) {
	return r.find(ctx, bson.M{"createdBy": authorID})
}

func (r *QuestionRepository) find(ctx context.Context, filter bson.M) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer cur.Close(ctx)

	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, cur.Err()
}

// Create validates and stores a new question, assigning an id when the author
// did not supply one.
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	if err := question.Validate(); err != nil {
		return err
	}
	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	if _, err := r.Col.InsertOne(ctx, question); err != nil {
		return fmt.Errorf("insert question %s: %w", question.ID, err)
	}
	return nil
}
