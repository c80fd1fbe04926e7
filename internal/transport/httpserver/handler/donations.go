package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	donationdomain "foodshare-go/internal/domain/donation"
	"github.com/go-chi/chi/v5"
)

type createDonationRequest struct {
	FoodDescription     string `json:"foodDescription"`
	Quantity            int    `json:"quantity"`
	Serves              int    `json:"serves"`
	CookingTime         *int   `json:"cookingTime"`
	PickupLocation      string `json:"pickupLocation"`
	ContactNumber       string `json:"contactNumber"`
	SpecialInstructions string `json:"specialInstructions"`
}

type updateDonationRequest struct {
	FoodDescription string `json:"foodDescription"`
	Quantity        int    `json:"quantity"`
	Serves          int    `json:"serves"`
}

type claimDonationRequest struct {
	Purpose string `json:"purpose"`
}

type advanceStatusRequest struct {
	Status string `json:"status"`
}

type donationResponse struct {
	ID                  string    `json:"id"`
	FoodDescription     string    `json:"foodDescription"`
	Quantity            int       `json:"quantity"`
	Serves              int       `json:"serves"`
	CookingTime         *int      `json:"cookingTime,omitempty"`
	PickupLocation      string    `json:"pickupLocation"`
	ContactNumber       string    `json:"contactNumber"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	Purpose             string    `json:"purpose,omitempty"`
	Status              string    `json:"status"`
	StatusUpdatedAt     time.Time `json:"statusUpdatedAt"`
	DonorID             string    `json:"donorId"`
	DonorName           string    `json:"donorName"`
	DonorAddress        string    `json:"donorAddress"`
	DonorContact        string    `json:"donorContact"`
	ClaimedByCharity    *string   `json:"claimedByCharity,omitempty"`
	CharityName         string    `json:"charityName,omitempty"`
	CharityAddress      string    `json:"charityAddress,omitempty"`
	AssignedWorker      *string   `json:"assignedWorker,omitempty"`
	WorkerName          string    `json:"workerName,omitempty"`
	WorkerContact       string    `json:"workerContact,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

type etaResponse struct {
	Status          string    `json:"status"`
	StatusUpdatedAt time.Time `json:"statusUpdatedAt"`
	ETAMinutes      int       `json:"etaMinutes"`
}

func toDonationResponse(record donationdomain.Donation) donationResponse {
	return donationResponse{
		ID:                  record.ID,
		FoodDescription:     record.FoodDescription,
		Quantity:            record.Quantity,
		Serves:              record.Serves,
		CookingTime:         record.CookingTime,
		PickupLocation:      record.PickupLocation,
		ContactNumber:       record.ContactNumber,
		SpecialInstructions: record.SpecialInstructions,
		Purpose:             record.Purpose,
		Status:              record.Status,
		StatusUpdatedAt:     record.StatusUpdatedAt,
		DonorID:             record.DonorID,
		DonorName:           record.DonorName,
		DonorAddress:        record.DonorAddress,
		DonorContact:        record.DonorContact,
		ClaimedByCharity:    record.ClaimedByCharity,
		CharityName:         record.CharityName,
		CharityAddress:      record.CharityAddress,
		AssignedWorker:      record.AssignedWorker,
		WorkerName:          record.WorkerName,
		WorkerContact:       record.WorkerContact,
		CreatedAt:           record.CreatedAt,
	}
}

func toDonationListResponse(records []donationdomain.Donation) []donationResponse {
	response := make([]donationResponse, 0, len(records))
	for _, record := range records {
		response = append(response, toDonationResponse(record))
	}
	return response
}

// writeDonationError maps domain failures onto the response taxonomy:
// missing records are 404, role/approval/ownership failures are 403,
// lifecycle-state rejections are 400, and lost races on conditional
// transitions are 409 so the caller knows a retry against fresh state
// may succeed.
func (h *Handlers) writeDonationError(w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case errors.Is(err, donationdomain.ErrDonationNotFound):
		h.log.BusinessError(op+": donation not found", err, args...)
		writeError(w, http.StatusNotFound, "donation_not_found", "donation not found")
	case errors.Is(err, donationdomain.ErrWrongRole), errors.Is(err, donationdomain.ErrNotApproved):
		h.log.BusinessError(op+": forbidden", err, args...)
		writeError(w, http.StatusForbidden, "forbidden", "account not approved for this action")
	case errors.Is(err, donationdomain.ErrNotOwner):
		h.log.BusinessError(op+": not owner", err, args...)
		writeError(w, http.StatusForbidden, "not_owner", "user not authorized")
	case errors.Is(err, donationdomain.ErrNotEditable):
		h.log.BusinessError(op+": not editable", err, args...)
		writeError(w, http.StatusBadRequest, "invalid_state", "cannot edit a claimed donation")
	case errors.Is(err, donationdomain.ErrNotAvailable):
		h.log.BusinessError(op+": not available", err, args...)
		writeError(w, http.StatusConflict, "donation_not_available", "donation not available")
	case errors.Is(err, donationdomain.ErrInvalidTransition):
		h.log.BusinessError(op+": illegal transition", err, args...)
		writeError(w, http.StatusConflict, "invalid_transition", "illegal status transition")
	default:
		h.log.InternalError(op+": failed", err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func (h *Handlers) ListAvailableDonations(w http.ResponseWriter, r *http.Request) {
	records, err := h.Donations.ListAvailable(r.Context())
	if err != nil {
		h.log.InternalError("donations.available: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toDonationListResponse(records))
}

func (h *Handlers) ListDonorDonations(w http.ResponseWriter, r *http.Request) {
	account, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	records, err := h.Donations.ListByDonor(r.Context(), account.ID)
	if err != nil {
		h.log.InternalError("donations.donor: list failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toDonationListResponse(records))
}

func (h *Handlers) ListCharityDonations(w http.ResponseWriter, r *http.Request) {
	account, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	records, err := h.Donations.ListByCharity(r.Context(), account.ID)
	if err != nil {
		h.log.InternalError("donations.charity: list failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toDonationListResponse(records))
}

func (h *Handlers) ListClaimedDonations(w http.ResponseWriter, r *http.Request) {
	records, err := h.Donations.ListClaimedOrInTransit(r.Context())
	if err != nil {
		h.log.InternalError("donations.claimed: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toDonationListResponse(records))
}

func (h *Handlers) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	account, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	created, err := h.Donations.Create(r.Context(), actorFrom(account), donationdomain.CreateInput{
		FoodDescription:     req.FoodDescription,
		Quantity:            req.Quantity,
		Serves:              req.Serves,
		CookingTime:         req.CookingTime,
		PickupLocation:      req.PickupLocation,
		ContactNumber:       req.ContactNumber,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		if errors.Is(err, donationdomain.ErrWrongRole) || errors.Is(err, donationdomain.ErrNotApproved) {
			h.writeDonationError(w, "donations.create", err, "user_id", account.ID)
			return
		}
		h.log.BusinessError("donations.create: rejected", err, "user_id", account.ID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toDonationResponse(*created))
}

func (h *Handlers) UpdateDonation(w http.ResponseWriter, r *http.Request) {
	var req updateDonationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	donationID := strings.TrimSpace(chi.URLParam(r, "id"))
	if donationID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	account, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	updated, err := h.Donations.Update(r.Context(), account.ID, donationID, donationdomain.UpdateFields{
		FoodDescription: req.FoodDescription,
		Quantity:        req.Quantity,
		Serves:          req.Serves,
	})
	if err != nil {
		h.writeDonationError(w, "donations.update", err, "user_id", account.ID, "donation_id", donationID)
		return
	}

	writeJSON(w, http.StatusOK, toDonationResponse(*updated))
}

func (h *Handlers) DeleteDonation(w http.ResponseWriter, r *http.Request) {
	donationID := strings.TrimSpace(chi.URLParam(r, "id"))
	if donationID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	account, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.Donations.Delete(r.Context(), account.ID, donationID); err != nil {
		h.writeDonationError(w, "donations.delete", err, "user_id", account.ID, "donation_id", donationID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "donation deleted"})
}

func (h *Handlers) ClaimDonation(w http.ResponseWriter, r *http.Request) {
	var req claimDonationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	donationID := strings.TrimSpace(chi.URLParam(r, "id"))
	if donationID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	account, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	claimed, err := h.Donations.Claim(r.Context(), actorFrom(account), donationID, strings.TrimSpace(req.Purpose))
	if err != nil {
		h.writeDonationError(w, "donations.claim", err, "user_id", account.ID, "donation_id", donationID)
		return
	}

	writeJSON(w, http.StatusOK, toDonationResponse(*claimed))
}

func (h *Handlers) AdvanceDonationStatus(w http.ResponseWriter, r *http.Request) {
	var req advanceStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	donationID := strings.TrimSpace(chi.URLParam(r, "id"))
	if donationID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	account, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	updated, err := h.Donations.AdvanceStatus(r.Context(), actorFrom(account), donationID, req.Status)
	if err != nil {
		h.writeDonationError(w, "donations.status", err, "user_id", account.ID, "donation_id", donationID, "status", req.Status)
		return
	}

	writeJSON(w, http.StatusOK, toDonationResponse(*updated))
}

func (h *Handlers) DonationETA(w http.ResponseWriter, r *http.Request) {
	donationID := strings.TrimSpace(chi.URLParam(r, "id"))
	if donationID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	account, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	eta, err := h.Donations.EstimateETAFor(r.Context(), actorFrom(account), donationID)
	if err != nil {
		h.writeDonationError(w, "donations.eta", err, "user_id", account.ID, "donation_id", donationID)
		return
	}

	writeJSON(w, http.StatusOK, etaResponse{
		Status:          eta.Status,
		StatusUpdatedAt: eta.StatusUpdatedAt,
		ETAMinutes:      eta.Minutes,
	})
}
