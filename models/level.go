package models

// Level is a named XP threshold. A student's current level is the one with
// the largest XPRequired not exceeding their XP; it is derived on demand and
// never stored on the user row, so the catalog can change independently.
type Level struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"not null" json:"name"`
	XPRequired int64   `gorm:"not null;default:0;index" json:"xp_required"`
	Reward     *string `gorm:"type:text" json:"reward,omitempty"`

	Timestamps
}
