// Package daily selects each user's question of the day as a pure function
// of the catalog, the previously stored selection and the current day. The
// selection state lives on the user document; nothing here reads ambient
// storage.
package daily

import (
	"math/rand"
	"time"

	"progress-service/internal/models"
)

// Seed derives a deterministic selection seed from a day and a user id, so
// the same user sees the same question all day on every device.
func Seed(day time.Time, userID string) int64 {
	seed := day.Unix()
	for _, r := range userID {
		seed = seed*31 + int64(r)
	}
	return seed
}

// Next returns the selection valid for today. A previous selection from the
// same day is reused as long as its question still exists; otherwise a new
// question is drawn with the seed. today must be day-truncated. The second
// return is false when the catalog is empty and no selection can be made.
func Next(questions []models.Question, prev *models.DailyQuestion, today time.Time, seed int64) (models.DailyQuestion, bool) {
	if prev != nil && prev.Date.Equal(today) {
		for _, q := range questions {
			if q.ID == prev.QuestionID {
				return *prev, true
			}
		}
	}
	if len(questions) == 0 {
		return models.DailyQuestion{}, false
	}
	pick := questions[rand.New(rand.NewSource(seed)).Intn(len(questions))]
	return models.DailyQuestion{
		QuestionID: pick.ID,
		Date:       today,
		Answered:   false,
	}, true
}

// MarkAnswered flags the selection as answered for the rest of its day.
func MarkAnswered(sel models.DailyQuestion) models.DailyQuestion {
	sel.Answered = true
	return sel
}

// AnsweredToday reports whether the stored selection is today's and already
// answered. today must be day-truncated.
func AnsweredToday(sel *models.DailyQuestion, today time.Time) bool {
	return sel != nil && sel.Date.Equal(today) && sel.Answered
}
