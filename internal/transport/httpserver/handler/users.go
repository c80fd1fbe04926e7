package handler

import (
	"errors"
	"net/http"

	userdomain "foodshare-go/internal/domain/user"
)

type registerRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	Role              string `json:"role"`
	ContactPerson     string `json:"contactPerson"`
	ContactNumber     string `json:"contactNumber"`
	Address           string `json:"address"`
	BusinessName      string `json:"businessName"`
	BusinessLicense   string `json:"businessLicense"`
	FoodSafetyCert    string `json:"foodSafetyCert"`
	CharityName       string `json:"charityName"`
	NGOLicense        string `json:"ngoLicense"`
	BeneficiaryType   string `json:"beneficiaryType"`
	StorageFacilities string `json:"storageFacilities"`
	EmployeeID        string `json:"employeeId"`
	AreaOfOperation   string `json:"areaOfOperation"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string                `json:"token"`
	User  userdomain.PublicView `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	created, err := h.Users.Register(r.Context(), userdomain.RegisterInput{
		Email:             req.Email,
		Password:          req.Password,
		Role:              req.Role,
		ContactPerson:     req.ContactPerson,
		ContactNumber:     req.ContactNumber,
		Address:           req.Address,
		BusinessName:      req.BusinessName,
		BusinessLicense:   req.BusinessLicense,
		FoodSafetyCert:    req.FoodSafetyCert,
		CharityName:       req.CharityName,
		NGOLicense:        req.NGOLicense,
		BeneficiaryType:   req.BeneficiaryType,
		StorageFacilities: req.StorageFacilities,
		EmployeeID:        req.EmployeeID,
		AreaOfOperation:   req.AreaOfOperation,
	})
	if err != nil {
		if errors.Is(err, userdomain.ErrEmailTaken) {
			h.log.BusinessError("users.register: email taken", err)
			writeError(w, http.StatusBadRequest, "email_taken", "user with this email already exists")
			return
		}
		h.log.BusinessError("users.register: rejected", err)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created.Public())
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrInvalidCredentials):
			// Uniform for unknown email and wrong password.
			writeError(w, http.StatusBadRequest, "invalid_credentials", "invalid credentials")
		case errors.Is(err, userdomain.ErrPendingApproval):
			h.log.BusinessError("users.login: account not approved", err)
			writeError(w, http.StatusForbidden, "pending_approval", "your account is pending approval")
		default:
			h.log.InternalError("users.login: failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: result.Token, User: result.User})
}
