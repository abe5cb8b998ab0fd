package model

import "time"

// User is the persisted profile. Goals stays nil until goal setup completes;
// that nil/non-nil split is the single signal for finished onboarding.
type User struct {
	TelegramID int64
	FullName   string
	Username   string
	Goals      *GoalSet
	CreatedAt  time.Time
}

func (u User) HasGoals() bool {
	return u.Goals != nil
}
