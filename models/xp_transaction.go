package models

import "time"

// XPTransaction is the append-only grant log. One row per affected student
// per grant; the retention worker prunes rows past the configured age.
type XPTransaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	MissionID *uint     `gorm:"index" json:"mission_id,omitempty"`
	Reason    string    `gorm:"type:text" json:"reason"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
