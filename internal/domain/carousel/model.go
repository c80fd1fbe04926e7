package carousel

import "time"

// Image is one admin-curated homepage carousel entry. Images have no
// relation to donations and their own lifecycle.
type Image struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	URL       string    `gorm:"not null"`
	Title     string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
