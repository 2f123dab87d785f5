package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	u := User{ID: "u1", Points: -3}

	repaired := u.Normalize()
	if !repaired {
		t.Fatal("expected Normalize to report repairs")
	}
	if u.CompletedQuestions == nil || u.FavoriteQuestions == nil || u.ActivityHistory == nil {
		t.Error("nil collections not defaulted")
	}
	if u.Points != 0 {
		t.Errorf("Points = %d, want clamped to 0", u.Points)
	}

	if u.Normalize() {
		t.Error("second Normalize found more to repair")
	}
}

func TestUserDecodeToleratesMissingFields(t *testing.T) {
	// A document written by an older revision: no counters, no sets, no
	// history. The read defaults every missing field instead of failing.
	raw, err := bson.Marshal(bson.M{
		"_id":   "u1",
		"email": "u1@example.com",
		"name":  "U One",
	})
	if err != nil {
		t.Fatal(err)
	}

	var u User
	if err := bson.Unmarshal(raw, &u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !u.Normalize() {
		t.Error("expected repairs on a minimal document")
	}

	if u.Points != 0 || u.TotalQuestionsAnswered != 0 || u.CorrectAnswers != 0 || u.Streak != 0 {
		t.Errorf("counters not zero: %+v", u)
	}
	if len(u.CompletedQuestions) != 0 || len(u.ActivityHistory) != 0 {
		t.Errorf("collections not empty: %+v", u)
	}
}

func TestHasCompletedAndFavorite(t *testing.T) {
	u := User{
		CompletedQuestions: []string{"q1", "q2"},
		FavoriteQuestions:  []string{"q3"},
	}
	if !u.HasCompleted("q1") || u.HasCompleted("q3") {
		t.Error("HasCompleted wrong membership")
	}
	if !u.HasFavorite("q3") || u.HasFavorite("q1") {
		t.Error("HasFavorite wrong membership")
	}
}

func TestNewUser(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	u := NewUser("u1", "u1@example.com", "U One", now)

	if u.Points != 0 || u.Streak != 0 || u.Rank != 0 {
		t.Errorf("new user has nonzero stats: %+v", u)
	}
	if u.CompletedQuestions == nil || u.ActivityHistory == nil {
		t.Error("new user has nil collections")
	}
	if !u.NotificationSettings.Email || !u.NotificationSettings.Push || !u.NotificationSettings.DailyReminder {
		t.Error("notification defaults should be on")
	}
	if !u.CreatedAt.Equal(now) || !u.LastLoginAt.Equal(now) {
		t.Error("timestamps not set to provisioning time")
	}
}

func TestParseCategory(t *testing.T) {
	testCases := []struct {
		raw      string
		expected Category
	}{
		{"OOP", CategoryOOP},
		{"WebDev", CategoryWebDev},
		{"DataStructures", CategoryDataStructures},
		{"Data Estructure", CategoryUncategorized}, // legacy spelling
		{"", CategoryUncategorized},
		{"nonsense", CategoryUncategorized},
	}
	for _, tc := range testCases {
		if got := ParseCategory(tc.raw); got != tc.expected {
			t.Errorf("ParseCategory(%q) = %s, want %s", tc.raw, got, tc.expected)
		}
	}
}

func TestQuestionValidate(t *testing.T) {
	valid := Question{
		Options:            []string{"a", "b", "c", "d"},
		CorrectOptionIndex: 2,
		Points:             5,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid question rejected: %v", err)
	}

	testCases := []struct {
		name   string
		mutate func(*Question)
		want   error
	}{
		{"one option", func(q *Question) { q.Options = []string{"a"} }, ErrTooFewOptions},
		{"index too high", func(q *Question) { q.CorrectOptionIndex = 4 }, ErrCorrectIndexOutOfRange},
		{"negative index", func(q *Question) { q.CorrectOptionIndex = -1 }, ErrCorrectIndexOutOfRange},
		{"zero points", func(q *Question) { q.Points = 0 }, ErrPointsOutOfRange},
		{"eleven points", func(q *Question) { q.Points = 11 }, ErrPointsOutOfRange},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := valid
			q.Options = append([]string(nil), valid.Options...)
			tc.mutate(&q)
			if err := q.Validate(); err != tc.want {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
