package handler

import (
	"errors"
	"net/http"

	carouseldomain "foodshare-go/internal/domain/carousel"
	donationdomain "foodshare-go/internal/domain/donation"
	statsdomain "foodshare-go/internal/domain/stats"
	userdomain "foodshare-go/internal/domain/user"
	"foodshare-go/internal/transport/httpserver/middleware"
	"foodshare-go/pkg/logger"
)

type Handlers struct {
	Users     *userdomain.Service
	Donations *donationdomain.Service
	Carousel  *carouseldomain.Service
	Stats     *statsdomain.Service
	log       logger.Logger
}

func New(users *userdomain.Service, donations *donationdomain.Service, carousel *carouseldomain.Service, stats *statsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Users:     users,
		Donations: donations,
		Carousel:  carousel,
		Stats:     stats,
		log:       log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// currentUser re-loads the authenticated principal from storage, so
// role and approval reflect the latest writes rather than anything
// encoded in the credential.
func (h *Handlers) currentUser(w http.ResponseWriter, r *http.Request) (*userdomain.User, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return nil, false
	}

	account, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return nil, false
		}
		h.log.InternalError("auth: load principal failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return nil, false
	}
	return account, true
}

func actorFrom(account *userdomain.User) donationdomain.Actor {
	return donationdomain.Actor{
		ID:      account.ID,
		Role:    account.Role,
		Status:  account.Status,
		Name:    account.DisplayName(),
		Address: account.Address,
		Contact: account.ContactNumber,
	}
}
