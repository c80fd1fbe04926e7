package handler

import (
	"errors"
	"net/http"
	"strings"

	userdomain "foodshare-go/internal/domain/user"
	"github.com/go-chi/chi/v5"
)

type setStatusRequest struct {
	Status string `json:"status"`
}

type pendingUserResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Status          string `json:"status"`
	ContactPerson   string `json:"contactPerson"`
	ContactNumber   string `json:"contactNumber"`
	Address         string `json:"address,omitempty"`
	BusinessName    string `json:"businessName,omitempty"`
	BusinessLicense string `json:"businessLicense,omitempty"`
	CharityName     string `json:"charityName,omitempty"`
	NGOLicense      string `json:"ngoLicense,omitempty"`
	EmployeeID      string `json:"employeeId,omitempty"`
	AreaOfOperation string `json:"areaOfOperation,omitempty"`
}

func toPendingUserResponse(account userdomain.User) pendingUserResponse {
	return pendingUserResponse{
		ID:              account.ID,
		Email:           account.Email,
		Role:            account.Role,
		Status:          account.Status,
		ContactPerson:   account.ContactPerson,
		ContactNumber:   account.ContactNumber,
		Address:         account.Address,
		BusinessName:    account.BusinessName,
		BusinessLicense: account.BusinessLicense,
		CharityName:     account.CharityName,
		NGOLicense:      account.NGOLicense,
		EmployeeID:      account.EmployeeID,
		AreaOfOperation: account.AreaOfOperation,
	}
}

func (h *Handlers) ListPendingUsers(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	pending, err := h.Users.ListPending(r.Context(), admin.ID)
	if err != nil {
		if errors.Is(err, userdomain.ErrNotAdmin) {
			h.log.BusinessError("admin.pending: access denied", err, "user_id", admin.ID)
			writeError(w, http.StatusForbidden, "forbidden", "access denied")
			return
		}
		h.log.InternalError("admin.pending: list failed", err, "user_id", admin.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]pendingUserResponse, 0, len(pending))
	for _, account := range pending {
		response = append(response, toPendingUserResponse(account))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	targetID := strings.TrimSpace(chi.URLParam(r, "id"))
	if targetID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	if !userdomain.ValidReviewStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "invalid_request", "status must be Approved or Rejected")
		return
	}

	admin, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	updated, err := h.Users.SetStatus(r.Context(), admin.ID, targetID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrNotAdmin):
			h.log.BusinessError("admin.set_status: access denied", err, "user_id", admin.ID)
			writeError(w, http.StatusForbidden, "forbidden", "access denied")
		case errors.Is(err, userdomain.ErrUserNotFound):
			h.log.BusinessError("admin.set_status: user not found", err, "target_id", targetID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		default:
			h.log.InternalError("admin.set_status: failed", err, "target_id", targetID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated.Public())
}
