package models

// Mission is an admin-defined task with a fixed XP reward. The reward is
// catalog-defined: grant endpoints look it up here and ignore any
// caller-supplied amount. Missions are created and deleted, never updated.
type Mission struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Title          string  `gorm:"not null" json:"title"`
	Description    string  `gorm:"type:text" json:"description"`
	XPReward       int64   `gorm:"not null;default:0" json:"xp_reward"`
	ImageURL       *string `gorm:"type:text" json:"image_url,omitempty"`
	RequiresUpload bool    `gorm:"not null;default:false" json:"requires_upload"`

	Timestamps
}
