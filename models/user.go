package models

import (
	"github.com/lib/pq"
)

// Role determines which part of the app a user may access
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// OnboardingStatus is derived from the nullable assignment columns on User.
// A student is Completed once traits and items have been written; the
// character may legitimately be missing when the catalog was empty at
// assignment time, and the triple is still never re-rolled.
type OnboardingStatus string

const (
	OnboardingNotStarted OnboardingStatus = "not_started"
	OnboardingCompleted  OnboardingStatus = "completed"
)

// User is either an admin or a student. Students carry the full progression
// state: XP, the highest-XP watermark and the one-time character assignment.
// XP and HighestXP are written only by the progression service; the
// character/traits/items triple only by the onboarding service.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash
	Role     Role   `gorm:"type:varchar(16);not null;default:'student';index" json:"role"`

	ClassID *uint  `gorm:"index" json:"class_id,omitempty"`
	Class   *Class `json:"class,omitempty"`

	XP        int64 `gorm:"not null;default:0" json:"xp"`
	HighestXP int64 `gorm:"not null;default:0" json:"highest_xp"` // invariant: HighestXP >= XP

	// One-time onboarding assignment. Either all three are set or none is.
	CharacterID *uint          `json:"character_id,omitempty"`
	Character   *Character     `json:"character,omitempty"`
	Traits      pq.StringArray `gorm:"type:text[]" json:"traits"`
	Items       pq.StringArray `gorm:"type:text[]" json:"items"`

	Timestamps
}

// OnboardingStatus reports whether the one-time assignment already happened.
func (u *User) OnboardingStatus() OnboardingStatus {
	if len(u.Traits) > 0 && len(u.Items) > 0 {
		return OnboardingCompleted
	}
	return OnboardingNotStarted
}
