package user

import "time"

const (
	RoleDonor   = "Donor"
	RoleCharity = "Charity"
	RoleWorker  = "Worker"
	RoleAdmin   = "Admin"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type User struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"type:varchar(16);not null"`
	Status       string `gorm:"type:varchar(16);not null;default:Pending"`

	ContactPerson string `gorm:"not null"`
	ContactNumber string `gorm:"not null"`
	Address       string

	// Donor profile.
	BusinessName    string
	BusinessLicense string
	FoodSafetyCert  string

	// Charity profile.
	CharityName       string
	NGOLicense        string
	BeneficiaryType   string
	StorageFacilities string

	// Worker profile.
	EmployeeID      string
	AreaOfOperation string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// DisplayName is the name captured into donation snapshots: the
// organization name when the profile carries one, the contact person
// otherwise.
func (u User) DisplayName() string {
	switch u.Role {
	case RoleDonor:
		if u.BusinessName != "" {
			return u.BusinessName
		}
	case RoleCharity:
		if u.CharityName != "" {
			return u.CharityName
		}
	}
	return u.ContactPerson
}

func ValidRole(role string) bool {
	switch role {
	case RoleDonor, RoleCharity, RoleWorker, RoleAdmin:
		return true
	}
	return false
}

func ValidReviewStatus(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// PublicView is what login and admin listings expose; the password hash
// never leaves the domain.
type PublicView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

func (u User) Public() PublicView {
	return PublicView{
		ID:     u.ID,
		Name:   u.DisplayName(),
		Email:  u.Email,
		Role:   u.Role,
		Status: u.Status,
	}
}
