package service

import (
	"context"
	"log"

	"progress-service/internal/event"
	"progress-service/internal/leaderboard"
	"progress-service/internal/repository"
)

// LeaderboardService recomputes the board from scratch and serves reads. The
// Redis cache answers top-N queries; the Mongo documents stay the source of
// truth for persisted ranks.
type LeaderboardService struct {
	users     *repository.UserRepository
	cache     *leaderboard.Cache
	publisher *event.Publisher
}

func NewLeaderboardService(users *repository.UserRepository, cache *leaderboard.Cache, publisher *event.Publisher) *LeaderboardService {
	return &LeaderboardService{users: users, cache: cache, publisher: publisher}
}

// Recompute reads every user, assigns stable 1-indexed ranks by points
// descending, writes the ranks back and refreshes the cache. Safe to re-run:
// unchanged input yields the identical mapping.
func (s *LeaderboardService) Recompute(ctx context.Context) ([]leaderboard.Entry, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ranked := leaderboard.Rank(users)

	entries := make([]leaderboard.Entry, len(ranked))
	for i, u := range ranked {
		entries[i] = leaderboard.Entry{UserID: u.ID, Points: u.Points, Rank: int64(u.Rank)}
		if err := s.users.UpdateRank(ctx, u.ID, u.Rank); err != nil {
			return nil, err
		}
	}
	if s.cache != nil {
		if err := s.cache.Rebuild(ctx, ranked); err != nil {
			log.Printf("leaderboard cache rebuild failed: %v", err)
		}
	}

	s.publisher.Publish(event.LeaderboardRecomputed, map[string]interface{}{
		"users": len(ranked),
	})
	return entries, nil
}

// Top serves the highest-scoring n users from the cache, falling back to a
// full recompute when no cache is configured.
func (s *LeaderboardService) Top(ctx context.Context, n int64) ([]leaderboard.Entry, error) {
	if s.cache != nil {
		entries, err := s.cache.Top(ctx, n)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
		if err != nil {
			log.Printf("leaderboard cache read failed: %v", err)
		}
	}
	entries, err := s.Recompute(ctx)
	if err != nil {
		return nil, err
	}
	if int64(len(entries)) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// UserRank returns one user's cached 1-indexed rank, 0 when absent.
func (s *LeaderboardService) UserRank(ctx context.Context, userID string) (int64, error) {
	if s.cache != nil {
		return s.cache.UserRank(ctx, userID)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(user.Rank), nil
}
