package models

// Character is an admin-managed catalog entry. Onboarding draws one uniformly
// at random for each new student.
type Character struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	ImageURL *string `gorm:"type:text" json:"image_url,omitempty"`

	Timestamps
}
