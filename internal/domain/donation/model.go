package donation

import "time"

const (
	StatusAvailable = "Available"
	StatusClaimed   = "Claimed"
	StatusInTransit = "In Transit"
	StatusDelivered = "Delivered"
)

// Donation is an append-only record of one unit of surplus food moving
// through the claim/delivery lifecycle. Donor, charity and worker
// display data are captured as snapshots at the transition that
// establishes each relationship and never refreshed afterwards, so the
// record stays a faithful audit trail even when profiles change later.
type Donation struct {
	ID                  string `gorm:"type:uuid;primaryKey"`
	FoodDescription     string `gorm:"not null"`
	Quantity            int    `gorm:"not null"`
	Serves              int    `gorm:"not null"`
	CookingTime         *int
	PickupLocation      string `gorm:"not null"`
	ContactNumber       string `gorm:"not null"`
	SpecialInstructions string
	Purpose             string

	Status          string    `gorm:"type:varchar(16);not null;default:Available;index"`
	StatusUpdatedAt time.Time `gorm:"not null"`

	DonorID      string `gorm:"type:uuid;not null;index"`
	DonorName    string `gorm:"not null"`
	DonorAddress string `gorm:"not null"`
	DonorContact string `gorm:"not null"`

	ClaimedByCharity *string `gorm:"type:uuid;index"`
	CharityName      string
	CharityAddress   string

	AssignedWorker *string `gorm:"type:uuid"`
	WorkerName     string
	WorkerContact  string

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusClaimed, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

// CanTransition reports whether next is the legal successor of current.
// The lifecycle is strictly Available → Claimed → In Transit →
// Delivered; a Delivered record is permanent history.
func CanTransition(current, next string) bool {
	switch current {
	case StatusAvailable:
		return next == StatusClaimed
	case StatusClaimed:
		return next == StatusInTransit
	case StatusInTransit:
		return next == StatusDelivered
	}
	return false
}

// CharitySnapshot and WorkerSnapshot carry the display data stamped
// onto a donation when the corresponding party enters the lifecycle.
type CharitySnapshot struct {
	CharityID string
	Name      string
	Address   string
}

type WorkerSnapshot struct {
	WorkerID string
	Name     string
	Contact  string
}
