package models

import "time"

type ActivityType string

const (
	ActivityPractice  ActivityType = "practice"
	ActivityDaily     ActivityType = "daily"
	ActivityInterview ActivityType = "interview"
)

type AnswerResult string

const (
	ResultCorrect   AnswerResult = "correct"
	ResultIncorrect AnswerResult = "incorrect"
)

// ActivityEvent is one entry of a user's append-only answer history. Events
// are immutable once appended.
type ActivityEvent struct {
	Date       time.Time    `bson:"date" json:"date"`
	Type       ActivityType `bson:"type" json:"type"`
	QuestionID string       `bson:"questionId" json:"questionId"`
	Result     AnswerResult `bson:"result" json:"result"`
}

type NotificationSettings struct {
	Email         bool `bson:"email" json:"email"`
	Push          bool `bson:"push" json:"push"`
	DailyReminder bool `bson:"dailyReminder" json:"dailyReminder"`
}

// DailyQuestion is the per-user daily question selection state. Date is
// truncated to the selection day.
type DailyQuestion struct {
	QuestionID string    `bson:"questionId" json:"questionId"`
	Date       time.Time `bson:"date" json:"date"`
	Answered   bool      `bson:"answered" json:"answered"`
}

// User is the per-identity progress document. Counters and history are
// mutated only through scoring transitions; profile fields are edited by
// out-of-scope profile flows. Rank is a cached value recomputed by the
// leaderboard, never an input to any other invariant.
type User struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Email    string `bson:"email" json:"email"`
	Name     string `bson:"name" json:"name"`
	PhotoURL string `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Bio      string `bson:"bio,omitempty" json:"bio,omitempty"`
	Country  string `bson:"country,omitempty" json:"country,omitempty"`

	Points                 int `bson:"points" json:"points"`
	TotalQuestionsAnswered int `bson:"totalQuestionsAnswered" json:"totalQuestionsAnswered"`
	CorrectAnswers         int `bson:"correctAnswers" json:"correctAnswers"`
	Streak                 int `bson:"streak" json:"streak"`
	Rank                   int `bson:"rank" json:"rank"`

	CompletedQuestions []string `bson:"completedQuestions" json:"completedQuestions"`
	FavoriteQuestions  []string `bson:"favoriteQuestions" json:"favoriteQuestions"`

	NotificationSettings NotificationSettings `bson:"notificationSettings" json:"notificationSettings"`

	ActivityHistory []ActivityEvent `bson:"activityHistory" json:"activityHistory"`
	DailyQuestion   *DailyQuestion  `bson:"dailyQuestion,omitempty" json:"dailyQuestion,omitempty"`

	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	LastLoginAt time.Time `bson:"lastLoginAt" json:"lastLoginAt"`
}

// NewUser returns a freshly provisioned user document with zeroed stats,
// matching the schema written at account creation.
func NewUser(id, email, name string, now time.Time) *User {
	return &User{
		ID:    id,
		Email: email,
		Name:  name,
		NotificationSettings: NotificationSettings{
			Email:         true,
			Push:          true,
			DailyReminder: true,
		},
		CompletedQuestions: []string{},
		FavoriteQuestions:  []string{},
		ActivityHistory:    []ActivityEvent{},
		CreatedAt:          now,
		LastLoginAt:        now,
	}
}

// HasCompleted reports whether the question was ever answered correctly.
func (u *User) HasCompleted(questionID string) bool {
	for _, id := range u.CompletedQuestions {
		if id == questionID {
			return true
		}
	}
	return false
}

// HasFavorite reports whether the question is starred by the user.
func (u *User) HasFavorite(questionID string) bool {
	for _, id := range u.FavoriteQuestions {
		if id == questionID {
			return true
		}
	}
	return false
}

// Normalize fills the defaults a lenient document read expects: nil sets and
// history become empty, a negative counter is clamped to zero. It reports
// whether anything had to be repaired so callers can log the anomaly instead
// of masking it silently.
func (u *User) Normalize() bool {
	repaired := false
	if u.CompletedQuestions == nil {
		u.CompletedQuestions = []string{}
		repaired = true
	}
	if u.FavoriteQuestions == nil {
		u.FavoriteQuestions = []string{}
		repaired = true
	}
	if u.ActivityHistory == nil {
		u.ActivityHistory = []ActivityEvent{}
		repaired = true
	}
	for _, c := range []*int{&u.Points, &u.TotalQuestionsAnswered, &u.CorrectAnswers, &u.Streak, &u.Rank} {
		if *c < 0 {
			*c = 0
			repaired = true
		}
	}
	return repaired
}
