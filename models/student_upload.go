package models

// StudentUpload is a proof file a student submitted for a mission. A row is
// written only after the object store accepted the file, so FileURL is never
// empty. Multiple uploads per student and mission are allowed.
type StudentUpload struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	UserID    uint     `gorm:"index;not null" json:"user_id"`
	MissionID *uint    `gorm:"index" json:"mission_id,omitempty"`
	Mission   *Mission `json:"mission,omitempty"`
	FileURL   string   `gorm:"type:text;not null" json:"file_url"`

	Timestamps
}
