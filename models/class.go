package models

// Class groups students. Name is unique across the installation.
type Class struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Students []User `gorm:"foreignKey:ClassID" json:"students,omitempty"`

	Timestamps
}
