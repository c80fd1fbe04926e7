package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

type RegisterInput struct {
	Email             string
	Password          string
	Role              string
	ContactPerson     string
	ContactNumber     string
	Address           string
	BusinessName      string
	BusinessLicense   string
	FoodSafetyCert    string
	CharityName       string
	NGOLicense        string
	BeneficiaryType   string
	StorageFacilities string
	EmployeeID        string
	AreaOfOperation   string
}

func (in RegisterInput) validate() error {
	if strings.TrimSpace(in.Email) == "" || !strings.Contains(in.Email, "@") {
		return fmt.Errorf("valid email is required")
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if !ValidRole(in.Role) {
		return fmt.Errorf("invalid role %q", in.Role)
	}
	if strings.TrimSpace(in.ContactPerson) == "" {
		return fmt.Errorf("contact person is required")
	}
	if strings.TrimSpace(in.ContactNumber) == "" {
		return fmt.Errorf("contact number is required")
	}
	if (in.Role == RoleDonor || in.Role == RoleCharity) && strings.TrimSpace(in.Address) == "" {
		return fmt.Errorf("address is required for %s accounts", strings.ToLower(in.Role))
	}
	return nil
}

// Register creates a Pending account with a bcrypt password hash. The
// very first account ever registered becomes an Approved Admin; this is
// the only path to the initial admin.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	status := StatusPending
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		role = RoleAdmin
		status = StatusApproved
	}

	created := &User{
		ID:                uuid.NewString(),
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
		Status:            status,
		ContactPerson:     strings.TrimSpace(in.ContactPerson),
		ContactNumber:     strings.TrimSpace(in.ContactNumber),
		Address:           strings.TrimSpace(in.Address),
		BusinessName:      strings.TrimSpace(in.BusinessName),
		BusinessLicense:   strings.TrimSpace(in.BusinessLicense),
		FoodSafetyCert:    strings.TrimSpace(in.FoodSafetyCert),
		CharityName:       strings.TrimSpace(in.CharityName),
		NGOLicense:        strings.TrimSpace(in.NGOLicense),
		BeneficiaryType:   strings.TrimSpace(in.BeneficiaryType),
		StorageFacilities: strings.TrimSpace(in.StorageFacilities),
		EmployeeID:        strings.TrimSpace(in.EmployeeID),
		AreaOfOperation:   strings.TrimSpace(in.AreaOfOperation),
	}

	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

type LoginResult struct {
	Token string
	User  PublicView
}

// Login verifies the password before looking at approval status, so
// account state is only disclosed to callers holding valid credentials.
// Unknown email and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if account.Status != StatusApproved {
		return nil, ErrPendingApproval
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{Token: token, User: account.Public()}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListPending returns accounts awaiting admin review.
func (s *Service) ListPending(ctx context.Context, adminID string) ([]User, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.repo.ListByStatus(ctx, StatusPending)
}

// SetStatus overwrites the target's review status. Approved and
// Rejected can both be re-applied at any time; there is no transition
// guard on account review.
func (s *Service) SetStatus(ctx context.Context, adminID, targetID, status string) (*User, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if !ValidReviewStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, target.ID, status); err != nil {
		return nil, err
	}

	target.Status = status
	return target, nil
}

func (s *Service) requireAdmin(ctx context.Context, adminID string) error {
	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if admin.Role != RoleAdmin {
		return ErrNotAdmin
	}
	return nil
}
