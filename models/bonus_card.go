package models

// BonusCard is a redeemable reward in the admin catalog. Cost semantics live
// outside the progression engine; the card is just a catalog entry here.
type BonusCard struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Title    string  `gorm:"not null" json:"title"`
	Text     string  `gorm:"type:text" json:"text"`
	XPCost   int64   `gorm:"not null;default:0" json:"xp_cost"`
	ImageURL *string `gorm:"type:text" json:"image_url,omitempty"`

	Timestamps
}
