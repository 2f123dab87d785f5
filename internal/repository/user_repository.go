package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"progress-service/internal/models"
)

var (
	ErrProfileNotFound = errors.New("user profile not found")
	ErrProfileExists   = errors.New("user profile already exists")
)

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("users")}
}

// FindByID loads one user document. Missing sets and counters are defaulted
// in place; the repair is logged rather than swallowed so garbled documents
// stay visible.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	if user.Normalize() {
		log.Printf("user %s: document repaired with default fields", id)
	}
	return &user, nil
}

// Insert provisions a new user document and refuses to overwrite an existing
// one.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	_, err := r.Col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrProfileExists
	}
	if err != nil {
		return fmt.Errorf("insert user %s: %w", user.ID, err)
	}
	return nil
}

// AnswerUpdate carries the persisted delta of one scoring transition.
// Counters go through $inc, the completed set through $addToSet and the
// history through $push, so two submissions racing from different processes
// commute on those fields instead of losing one of the updates. Streak and
// the daily selection are plain $set and still rely on the per-user
// single-writer lock in the service layer.
type AnswerUpdate struct {
	PointsDelta         int
	CorrectDelta        int
	CompletedQuestionID string
	Streak              int
	Event               models.ActivityEvent
	DailyQuestion       *models.DailyQuestion
	LastLoginAt         time.Time
}

// ApplyAnswerUpdate merges one scoring transition into the stored document.
func (r *UserRepository) ApplyAnswerUpdate(ctx context.Context, id string, upd AnswerUpdate) error {
	inc := bson.M{"totalQuestionsAnswered": 1}
	if upd.PointsDelta != 0 {
		inc["points"] = upd.PointsDelta
	}
	if upd.CorrectDelta != 0 {
		inc["correctAnswers"] = upd.CorrectDelta
	}
	set := bson.M{
		"streak":      upd.Streak,
		"lastLoginAt": upd.LastLoginAt,
	}
	if upd.DailyQuestion != nil {
		set["dailyQuestion"] = upd.DailyQuestion
	}
	update := bson.M{
		"$inc":  inc,
		"$set":  set,
		"$push": bson.M{"activityHistory": upd.Event},
	}
	if upd.CompletedQuestionID != "" {
		update["$addToSet"] = bson.M{"completedQuestions": upd.CompletedQuestionID}
	}

	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("apply answer update for user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// SetDailyQuestion stores the daily selection state without touching stats.
func (r *UserRepository) SetDailyQuestion(ctx context.Context, id string, sel *models.DailyQuestion) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"dailyQuestion": sel}})
	if err != nil {
		return fmt.Errorf("set daily question for user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// AddFavorite stars a question; adding twice is a no-op.
func (r *UserRepository) AddFavorite(ctx context.Context, id, questionID string) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"favoriteQuestions": questionID}})
	if err != nil {
		return fmt.Errorf("add favorite for user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// RemoveFavorite unstars a question.
func (r *UserRepository) RemoveFavorite(ctx context.Context, id, questionID string) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$pull": bson.M{"favoriteQuestions": questionID}})
	if err != nil {
		return fmt.Errorf("remove favorite for user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// ListAll returns every user document, ordered by points descending as a
// convenience for leaderboard reads. Documents failing to decode are
// defaulted the same way FindByID does.
func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "points", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []models.User
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		if u.Normalize() {
			log.Printf("user %s: document repaired with default fields", u.ID)
		}
		users = append(users, u)
	}
	return users, cur.Err()
}

// UpdateRank writes the cached rank field back to one user document.
func (r *UserRepository) UpdateRank(ctx context.Context, id string, rank int) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"rank": rank}})
	if err != nil {
		return fmt.Errorf("update rank for user %s: %w", id, err)
	}
	return nil
}
