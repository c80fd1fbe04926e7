package donation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Actor is the acting principal, freshly loaded from storage by the
// transport layer for every call. Role and approval are re-checked here
// on each operation; nothing is cached between requests.
type Actor struct {
	ID      string
	Role    string
	Status  string
	Name    string
	Address string
	Contact string
}

const (
	roleDonor   = "Donor"
	roleCharity = "Charity"
	roleWorker  = "Worker"
	roleAdmin   = "Admin"

	statusApproved = "Approved"
)

func knownRole(role string) bool {
	switch role {
	case roleDonor, roleCharity, roleWorker, roleAdmin:
		return true
	}
	return false
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	FoodDescription     string
	Quantity            int
	Serves              int
	CookingTime         *int
	PickupLocation      string
	ContactNumber       string
	SpecialInstructions string
}

func (in CreateInput) validate() error {
	if strings.TrimSpace(in.FoodDescription) == "" {
		return fmt.Errorf("food description is required")
	}
	if in.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if in.Serves <= 0 {
		return fmt.Errorf("serves must be positive")
	}
	if strings.TrimSpace(in.PickupLocation) == "" {
		return fmt.Errorf("pickup location is required")
	}
	if strings.TrimSpace(in.ContactNumber) == "" {
		return fmt.Errorf("contact number is required")
	}
	return nil
}

// Create posts a new Available donation, stamping the donor snapshot
// from the actor's current profile.
func (s *Service) Create(ctx context.Context, actor Actor, in CreateInput) (*Donation, error) {
	if actor.Role != roleDonor {
		return nil, ErrWrongRole
	}
	if actor.Status != statusApproved {
		return nil, ErrNotApproved
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	created := &Donation{
		ID:                  uuid.NewString(),
		FoodDescription:     strings.TrimSpace(in.FoodDescription),
		Quantity:            in.Quantity,
		Serves:              in.Serves,
		CookingTime:         in.CookingTime,
		PickupLocation:      strings.TrimSpace(in.PickupLocation),
		ContactNumber:       strings.TrimSpace(in.ContactNumber),
		SpecialInstructions: strings.TrimSpace(in.SpecialInstructions),
		Status:              StatusAvailable,
		StatusUpdatedAt:     s.now().UTC(),
		DonorID:             actor.ID,
		DonorName:           actor.Name,
		DonorAddress:        actor.Address,
		DonorContact:        actor.Contact,
	}

	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update edits the donor-editable fields of an Available donation owned
// by the caller.
func (s *Service) Update(ctx context.Context, donorID, donationID string, fields UpdateFields) (*Donation, error) {
	existing, err := s.repo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if existing.DonorID != donorID {
		return nil, ErrNotOwner
	}
	if existing.Status != StatusAvailable {
		return nil, ErrNotEditable
	}
	if strings.TrimSpace(fields.FoodDescription) == "" || fields.Quantity <= 0 || fields.Serves <= 0 {
		return nil, fmt.Errorf("food description, quantity and serves are required")
	}

	applied, err := s.repo.UpdateDetails(ctx, donationID, fields)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Claimed between our read and the write.
		return nil, ErrNotEditable
	}

	existing.FoodDescription = fields.FoodDescription
	existing.Quantity = fields.Quantity
	existing.Serves = fields.Serves
	return existing, nil
}

// Delete removes an Available donation owned by the caller.
func (s *Service) Delete(ctx context.Context, donorID, donationID string) error {
	existing, err := s.repo.GetByID(ctx, donationID)
	if err != nil {
		return err
	}
	if existing.DonorID != donorID {
		return ErrNotOwner
	}
	if existing.Status != StatusAvailable {
		return ErrNotEditable
	}

	applied, err := s.repo.DeleteAvailable(ctx, donationID)
	if err != nil {
		return err
	}
	if !applied {
		return ErrNotEditable
	}
	return nil
}

// Claim transitions an Available donation to Claimed and stamps the
// charity snapshot and purpose. The write only applies if the row is
// still Available, so a concurrent claimant loses cleanly instead of
// overwriting the first charity's snapshot.
func (s *Service) Claim(ctx context.Context, actor Actor, donationID, purpose string) (*Donation, error) {
	if actor.Role != roleCharity {
		return nil, ErrWrongRole
	}
	if actor.Status != statusApproved {
		return nil, ErrNotApproved
	}

	existing, err := s.repo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if existing.Status != StatusAvailable {
		return nil, ErrNotAvailable
	}

	snapshot := CharitySnapshot{
		CharityID: actor.ID,
		Name:      actor.Name,
		Address:   actor.Address,
	}
	at := s.now().UTC()

	applied, err := s.repo.Claim(ctx, donationID, snapshot, purpose, at)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrNotAvailable
	}

	existing.Status = StatusClaimed
	existing.StatusUpdatedAt = at
	existing.ClaimedByCharity = &snapshot.CharityID
	existing.CharityName = snapshot.Name
	existing.CharityAddress = snapshot.Address
	existing.Purpose = purpose
	return existing, nil
}

// AdvanceStatus moves a claimed donation forward through the delivery
// lifecycle. Any authenticated principal may call it; the first caller
// to advance a donation is recorded as its worker and that assignment
// never changes. Illegal successors are rejected, and the status write
// only applies while the row still holds the status we read.
func (s *Service) AdvanceStatus(ctx context.Context, actor Actor, donationID, next string) (*Donation, error) {
	if !ValidStatus(next) {
		return nil, ErrInvalidTransition
	}

	existing, err := s.repo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}

	// Available donations leave that state through Claim only; the
	// advance path covers post-claim movement.
	if existing.Status == StatusAvailable || !CanTransition(existing.Status, next) {
		return nil, ErrInvalidTransition
	}

	if existing.AssignedWorker == nil {
		snapshot := WorkerSnapshot{
			WorkerID: actor.ID,
			Name:     actor.Name,
			Contact:  actor.Contact,
		}
		applied, err := s.repo.AssignWorker(ctx, donationID, snapshot)
		if err != nil {
			return nil, err
		}
		if applied {
			existing.AssignedWorker = &snapshot.WorkerID
			existing.WorkerName = snapshot.Name
			existing.WorkerContact = snapshot.Contact
		}
	}

	at := s.now().UTC()
	applied, err := s.repo.UpdateStatus(ctx, donationID, existing.Status, next, at)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrInvalidTransition
	}

	if existing.AssignedWorker == nil {
		// Another caller won the assignment race; reload the record so
		// the response reflects the actual worker.
		return s.repo.GetByID(ctx, donationID)
	}

	existing.Status = next
	existing.StatusUpdatedAt = at
	return existing, nil
}

// ETA is the heuristic delivery estimate returned alongside a
// donation's status. It is a display figure, not a route computation.
type ETA struct {
	Status          string
	StatusUpdatedAt time.Time
	Minutes         int
}

// EstimateETA is a pure function of status, the last status change and
// the current time: Claimed waits a fixed 45 minutes for pickup, In
// Transit decays linearly from 30 and floors at 5, Delivered is 0 and
// anything else falls back to 60.
func EstimateETA(status string, statusUpdatedAt, now time.Time) int {
	switch status {
	case StatusClaimed:
		return 45
	case StatusInTransit:
		elapsed := int(now.Sub(statusUpdatedAt).Minutes())
		minutes := 30 - elapsed
		if minutes < 5 {
			minutes = 5
		}
		return minutes
	case StatusDelivered:
		return 0
	default:
		return 60
	}
}

// EstimateETAFor computes the heuristic for one donation on behalf of
// any principal holding a known role.
func (s *Service) EstimateETAFor(ctx context.Context, actor Actor, donationID string) (*ETA, error) {
	if !knownRole(actor.Role) {
		return nil, ErrWrongRole
	}

	existing, err := s.repo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}

	return &ETA{
		Status:          existing.Status,
		StatusUpdatedAt: existing.StatusUpdatedAt,
		Minutes:         EstimateETA(existing.Status, existing.StatusUpdatedAt, s.now()),
	}, nil
}

func (s *Service) ListAvailable(ctx context.Context) ([]Donation, error) {
	return s.repo.ListByStatus(ctx, StatusAvailable)
}

func (s *Service) ListByDonor(ctx context.Context, donorID string) ([]Donation, error) {
	return s.repo.ListByDonor(ctx, donorID)
}

func (s *Service) ListByCharity(ctx context.Context, charityID string) ([]Donation, error) {
	return s.repo.ListByCharity(ctx, charityID)
}

func (s *Service) ListClaimedOrInTransit(ctx context.Context) ([]Donation, error) {
	return s.repo.ListByStatus(ctx, StatusClaimed, StatusInTransit)
}
