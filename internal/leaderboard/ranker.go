// Package leaderboard orders users by points. Rank recomputes the full
// ordering from scratch; Cache keeps a Redis copy of the board for cheap
// top-N reads.
package leaderboard

import (
	"sort"

	"progress-service/internal/models"
)

// Rank returns the users ordered by points descending with the Rank field set
// to the 1-indexed position. The sort is stable, so users with equal points
// keep their input order. Running Rank on its own output yields the identical
// ordering.
func Rank(users []models.User) []models.User {
	ranked := make([]models.User, len(users))
	copy(ranked, users)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
