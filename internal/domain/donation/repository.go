package donation

import (
	"context"
	"time"
)

// UpdateFields are the donor-editable attributes; status and snapshots
// are never touched through this path.
type UpdateFields struct {
	FoodDescription string
	Quantity        int
	Serves          int
}

// Conditional mutations report applied=false when the stored row no
// longer satisfies the expected prior state, so a lost race surfaces as
// a conflict instead of a silent overwrite.
type Repository interface {
	Create(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)

	UpdateDetails(ctx context.Context, id string, fields UpdateFields) (applied bool, err error)
	DeleteAvailable(ctx context.Context, id string) (applied bool, err error)
	Claim(ctx context.Context, id string, snapshot CharitySnapshot, purpose string, at time.Time) (applied bool, err error)
	AssignWorker(ctx context.Context, id string, snapshot WorkerSnapshot) (applied bool, err error)
	UpdateStatus(ctx context.Context, id, from, to string, at time.Time) (applied bool, err error)

	ListByStatus(ctx context.Context, statuses ...string) ([]Donation, error)
	ListByDonor(ctx context.Context, donorID string) ([]Donation, error)
	ListByCharity(ctx context.Context, charityID string) ([]Donation, error)
}
