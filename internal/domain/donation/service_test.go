package donation

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeDonationRepo struct {
	donations map[string]*Donation

	// Forces the next conditional claim to report applied=false, as if
	// a concurrent claimant committed between the read and the write.
	loseNextClaim bool
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{donations: make(map[string]*Donation)}
}

func (r *fakeDonationRepo) Create(ctx context.Context, record *Donation) error {
	copied := *record
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}
	r.donations[record.ID] = &copied
	return nil
}

func (r *fakeDonationRepo) GetByID(ctx context.Context, id string) (*Donation, error) {
	record, ok := r.donations[id]
	if !ok {
		return nil, ErrDonationNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *fakeDonationRepo) UpdateDetails(ctx context.Context, id string, fields UpdateFields) (bool, error) {
	record, ok := r.donations[id]
	if !ok || record.Status != StatusAvailable {
		return false, nil
	}
	record.FoodDescription = fields.FoodDescription
	record.Quantity = fields.Quantity
	record.Serves = fields.Serves
	return true, nil
}

func (r *fakeDonationRepo) DeleteAvailable(ctx context.Context, id string) (bool, error) {
	record, ok := r.donations[id]
	if !ok || record.Status != StatusAvailable {
		return false, nil
	}
	delete(r.donations, id)
	return true, nil
}

func (r *fakeDonationRepo) Claim(ctx context.Context, id string, snapshot CharitySnapshot, purpose string, at time.Time) (bool, error) {
	if r.loseNextClaim {
		r.loseNextClaim = false
		return false, nil
	}
	record, ok := r.donations[id]
	if !ok || record.Status != StatusAvailable {
		return false, nil
	}
	record.Status = StatusClaimed
	record.StatusUpdatedAt = at
	record.ClaimedByCharity = &snapshot.CharityID
	record.CharityName = snapshot.Name
	record.CharityAddress = snapshot.Address
	record.Purpose = purpose
	return true, nil
}

func (r *fakeDonationRepo) AssignWorker(ctx context.Context, id string, snapshot WorkerSnapshot) (bool, error) {
	record, ok := r.donations[id]
	if !ok || record.AssignedWorker != nil {
		return false, nil
	}
	record.AssignedWorker = &snapshot.WorkerID
	record.WorkerName = snapshot.Name
	record.WorkerContact = snapshot.Contact
	return true, nil
}

func (r *fakeDonationRepo) UpdateStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error) {
	record, ok := r.donations[id]
	if !ok || record.Status != from {
		return false, nil
	}
	record.Status = to
	record.StatusUpdatedAt = at
	return true, nil
}

func (r *fakeDonationRepo) ListByStatus(ctx context.Context, statuses ...string) ([]Donation, error) {
	var result []Donation
	for _, record := range r.donations {
		for _, status := range statuses {
			if record.Status == status {
				result = append(result, *record)
				break
			}
		}
	}
	return result, nil
}

func (r *fakeDonationRepo) ListByDonor(ctx context.Context, donorID string) ([]Donation, error) {
	var result []Donation
	for _, record := range r.donations {
		if record.DonorID == donorID {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (r *fakeDonationRepo) ListByCharity(ctx context.Context, charityID string) ([]Donation, error) {
	var result []Donation
	for _, record := range r.donations {
		if record.ClaimedByCharity != nil && *record.ClaimedByCharity == charityID {
			result = append(result, *record)
		}
	}
	return result, nil
}

var (
	approvedDonor = Actor{ID: "donor-1", Role: "Donor", Status: "Approved", Name: "Sunrise Bakery", Address: "1 Baker St", Contact: "555-0101"}
	approvedChar  = Actor{ID: "charity-1", Role: "Charity", Status: "Approved", Name: "City Shelter", Address: "9 Shelter Rd", Contact: "555-0202"}
	worker        = Actor{ID: "worker-1", Role: "Worker", Status: "Approved", Name: "Kim", Contact: "555-0303"}
)

func validInput() CreateInput {
	return CreateInput{
		FoodDescription: "Bread",
		Quantity:        20,
		Serves:          50,
		PickupLocation:  "1 Baker St",
		ContactNumber:   "555-0101",
	}
}

func TestCreateRequiresApprovedDonor(t *testing.T) {
	svc := NewService(newFakeDonationRepo())

	if _, err := svc.Create(context.Background(), approvedChar, validInput()); !errors.Is(err, ErrWrongRole) {
		t.Fatalf("expected ErrWrongRole for charity, got %v", err)
	}

	pendingDonor := approvedDonor
	pendingDonor.Status = "Pending"
	if _, err := svc.Create(context.Background(), pendingDonor, validInput()); !errors.Is(err, ErrNotApproved) {
		t.Fatalf("expected ErrNotApproved for pending donor, got %v", err)
	}
}

func TestCreateStampsDonorSnapshot(t *testing.T) {
	svc := NewService(newFakeDonationRepo())

	created, err := svc.Create(context.Background(), approvedDonor, validInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Status != StatusAvailable {
		t.Fatalf("expected Available, got %q", created.Status)
	}
	if created.DonorName != "Sunrise Bakery" || created.DonorAddress != "1 Baker St" || created.DonorContact != "555-0101" {
		t.Fatalf("donor snapshot not stamped: %+v", created)
	}
}

func TestUpdateOwnershipAndState(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), approvedDonor, validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	fields := UpdateFields{FoodDescription: "Rolls", Quantity: 10, Serves: 25}

	if _, err := svc.Update(context.Background(), "someone-else", created.ID, fields); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	if _, err := svc.Claim(context.Background(), approvedChar, created.ID, "shelter"); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), approvedDonor.ID, created.ID, fields); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("expected ErrNotEditable after claim, got %v", err)
	}
	if err := svc.Delete(context.Background(), approvedDonor.ID, created.ID); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("expected ErrNotEditable on delete after claim, got %v", err)
	}
}

func TestClaimRequiresApprovedCharity(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), approvedDonor, validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Claim(context.Background(), approvedDonor, created.ID, "p"); !errors.Is(err, ErrWrongRole) {
		t.Fatalf("expected ErrWrongRole, got %v", err)
	}

	pending := approvedChar
	pending.Status = "Pending"
	if _, err := svc.Claim(context.Background(), pending, created.ID, "p"); !errors.Is(err, ErrNotApproved) {
		t.Fatalf("expected ErrNotApproved, got %v", err)
	}
}

func TestClaimTransitionsAndStamps(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), approvedDonor, validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	claimed, err := svc.Claim(context.Background(), approvedChar, created.ID, "shelter")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claimed.Status != StatusClaimed {
		t.Fatalf("expected Claimed, got %q", claimed.Status)
	}
	if claimed.CharityName != "City Shelter" || claimed.CharityAddress != "9 Shelter Rd" || claimed.Purpose != "shelter" {
		t.Fatalf("charity snapshot not stamped: %+v", claimed)
	}

	// A second claim must fail and leave the first snapshot untouched.
	other := approvedChar
	other.ID = "charity-2"
	other.Name = "Other Shelter"
	if _, err := svc.Claim(context.Background(), other, created.ID, "other"); !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("expected ErrNotAvailable, got %v", err)
	}
	stored, _ := repo.GetByID(context.Background(), created.ID)
	if stored.CharityName != "City Shelter" {
		t.Fatalf("first claimant's snapshot overwritten: %q", stored.CharityName)
	}
}

func TestClaimLostRaceSurfacesConflict(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), approvedDonor, validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	repo.loseNextClaim = true
	if _, err := svc.Claim(context.Background(), approvedChar, created.ID, "p"); !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("expected ErrNotAvailable on lost race, got %v", err)
	}
}

func TestClaimMissingDonation(t *testing.T) {
	svc := NewService(newFakeDonationRepo())

	if _, err := svc.Claim(context.Background(), approvedChar, "ghost", "p"); !errors.Is(err, ErrDonationNotFound) {
		t.Fatalf("expected ErrDonationNotFound, got %v", err)
	}
}

func TestAdvanceStatusAssignsFirstWorker(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(repo)

	created, _ := svc.Create(context.Background(), approvedDonor, validInput())
	if _, err := svc.Claim(context.Background(), approvedChar, created.ID, "p"); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	advanced, err := svc.AdvanceStatus(context.Background(), worker, created.ID, StatusInTransit)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if advanced.Status != StatusInTransit {
		t.Fatalf("expected In Transit, got %q", advanced.Status)
	}
	if advanced.AssignedWorker == nil || *advanced.AssignedWorker != worker.ID {
		t.Fatalf("expected worker assigned, got %+v", advanced.AssignedWorker)
	}
	if advanced.WorkerName != "Kim" || advanced.WorkerContact != "555-0303" {
		t.Fatalf("worker snapshot not stamped: %+v", advanced)
	}

	// A different caller advancing later must not displace the worker.
	second := worker
	second.ID = "worker-2"
	second.Name = "Lee"
	final, err := svc.AdvanceStatus(context.Background(), second, created.ID, StatusDelivered)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if *final.AssignedWorker != worker.ID || final.WorkerName != "Kim" {
		t.Fatalf("worker assignment was overwritten: %+v", final)
	}
}

func TestAdvanceStatusRejectsIllegalTransitions(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(repo)

	created, _ := svc.Create(context.Background(), approvedDonor, validInput())

	// Available donations only move through Claim.
	if _, err := svc.AdvanceStatus(context.Background(), worker, created.ID, StatusClaimed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from Available, got %v", err)
	}

	if _, err := svc.Claim(context.Background(), approvedChar, created.ID, "p"); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	// Skipping In Transit is illegal.
	if _, err := svc.AdvanceStatus(context.Background(), worker, created.ID, StatusDelivered); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for Claimed→Delivered, got %v", err)
	}

	if _, err := svc.AdvanceStatus(context.Background(), worker, created.ID, StatusInTransit); err != nil {
		t.Fatalf("advance to In Transit failed: %v", err)
	}
	if _, err := svc.AdvanceStatus(context.Background(), worker, created.ID, StatusDelivered); err != nil {
		t.Fatalf("advance to Delivered failed: %v", err)
	}

	// Delivered is permanent history.
	if _, err := svc.AdvanceStatus(context.Background(), worker, created.ID, StatusInTransit); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after Delivered, got %v", err)
	}

	if _, err := svc.AdvanceStatus(context.Background(), worker, created.ID, "Bogus"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for unknown status, got %v", err)
	}
}

func TestEstimateETA(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	if got := EstimateETA(StatusClaimed, now.Add(-3*time.Hour), now); got != 45 {
		t.Fatalf("Claimed: expected 45, got %d", got)
	}
	if got := EstimateETA(StatusInTransit, now.Add(-10*time.Minute), now); got != 20 {
		t.Fatalf("In Transit −10m: expected 20, got %d", got)
	}
	if got := EstimateETA(StatusInTransit, now.Add(-40*time.Minute), now); got != 5 {
		t.Fatalf("In Transit −40m: expected floor 5, got %d", got)
	}
	if got := EstimateETA(StatusDelivered, now, now); got != 0 {
		t.Fatalf("Delivered: expected 0, got %d", got)
	}
	if got := EstimateETA(StatusAvailable, now, now); got != 60 {
		t.Fatalf("Available: expected fallback 60, got %d", got)
	}
}

func TestFullLifecycleScenario(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), approvedDonor, validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != StatusAvailable {
		t.Fatalf("expected Available, got %q", created.Status)
	}

	claimed, err := svc.Claim(context.Background(), approvedChar, created.ID, "shelter")
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if claimed.Status != StatusClaimed || claimed.CharityName != "City Shelter" {
		t.Fatalf("unexpected claim result: %+v", claimed)
	}

	inTransit, err := svc.AdvanceStatus(context.Background(), worker, created.ID, StatusInTransit)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if inTransit.Status != StatusInTransit || inTransit.AssignedWorker == nil {
		t.Fatalf("unexpected advance result: %+v", inTransit)
	}

	before := inTransit.StatusUpdatedAt
	delivered, err := svc.AdvanceStatus(context.Background(), worker, created.ID, StatusDelivered)
	if err != nil {
		t.Fatalf("final advance failed: %v", err)
	}
	if delivered.Status != StatusDelivered {
		t.Fatalf("expected Delivered, got %q", delivered.Status)
	}
	if delivered.StatusUpdatedAt.Before(before) {
		t.Fatalf("statusUpdatedAt not refreshed")
	}
}
