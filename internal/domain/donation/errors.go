package donation

import "errors"

var (
	ErrDonationNotFound  = errors.New("donation not found")
	ErrNotApproved       = errors.New("account not approved for this action")
	ErrWrongRole         = errors.New("wrong role for this action")
	ErrNotOwner          = errors.New("not the owning donor")
	ErrNotEditable       = errors.New("cannot edit a claimed donation")
	ErrNotAvailable      = errors.New("donation not available")
	ErrInvalidTransition = errors.New("illegal status transition")
)
