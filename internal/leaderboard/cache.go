package leaderboard

import (
	"context"

	"github.com/redis/go-redis/v9"

	"progress-service/internal/models"
)

const boardKey = "leaderboard:points"

// Entry is one row of the cached board.
type Entry struct {
	UserID string `json:"userId"`
	Points int    `json:"points"`
	Rank   int64  `json:"rank"`
}

// Cache mirrors user point totals in a Redis ZSet. It serves display reads
// only; the persisted rank field always comes from Rank, because a ZSet
// orders equal scores lexically by member rather than by insertion order.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// UpdateScore upserts one user's point total.
func (c *Cache) UpdateScore(ctx context.Context, userID string, points int) error {
	return c.client.ZAdd(ctx, boardKey, redis.Z{
		Score:  float64(points),
		Member: userID,
	}).Err()
}

// Rebuild replaces the whole board with the given users.
func (c *Cache) Rebuild(ctx context.Context, users []models.User) error {
	if err := c.client.Del(ctx, boardKey).Err(); err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}
	zs := make([]redis.Z, len(users))
	for i, u := range users {
		zs[i] = redis.Z{Score: float64(u.Points), Member: u.ID}
	}
	return c.client.ZAdd(ctx, boardKey, zs...).Err()
}

// Top returns the highest-scoring n users, ranks 1-indexed.
func (c *Cache) Top(ctx context.Context, n int64) ([]Entry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, boardKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(results))
	for i, r := range results {
		entries[i] = Entry{
			UserID: r.Member.(string),
			Points: int(r.Score),
			Rank:   int64(i) + 1,
		}
	}
	return entries, nil
}

// UserRank returns the user's 1-indexed rank, or 0 when the user is not on
// the board.
func (c *Cache) UserRank(ctx context.Context, userID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, boardKey, userID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rank + 1, nil
}
