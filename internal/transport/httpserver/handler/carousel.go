package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	carouseldomain "foodshare-go/internal/domain/carousel"
	userdomain "foodshare-go/internal/domain/user"
	"github.com/go-chi/chi/v5"
)

type addImageRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type imageResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toImageResponse(image carouseldomain.Image) imageResponse {
	return imageResponse{
		ID:        image.ID,
		URL:       image.URL,
		Title:     image.Title,
		CreatedAt: image.CreatedAt,
	}
}

func (h *Handlers) ListCarouselImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.Carousel.List(r.Context())
	if err != nil {
		h.log.InternalError("carousel.list: failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]imageResponse, 0, len(images))
	for _, image := range images {
		response = append(response, toImageResponse(image))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) AddCarouselImage(w http.ResponseWriter, r *http.Request) {
	var req addImageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	image, err := h.Carousel.Add(r.Context(), req.URL, req.Title)
	if err != nil {
		h.log.BusinessError("carousel.add: rejected", err, "user_id", admin.ID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toImageResponse(*image))
}

func (h *Handlers) DeleteCarouselImage(w http.ResponseWriter, r *http.Request) {
	imageID := strings.TrimSpace(chi.URLParam(r, "id"))
	if imageID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	if err := h.Carousel.Remove(r.Context(), imageID); err != nil {
		if errors.Is(err, carouseldomain.ErrImageNotFound) {
			h.log.BusinessError("carousel.delete: not found", err, "image_id", imageID)
			writeError(w, http.StatusNotFound, "image_not_found", "carousel image not found")
			return
		}
		h.log.InternalError("carousel.delete: failed", err, "user_id", admin.ID, "image_id", imageID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "deleted"})
}

func (h *Handlers) requireAdmin(w http.ResponseWriter, r *http.Request) (*userdomain.User, bool) {
	account, ok := h.currentUser(w, r)
	if !ok {
		return nil, false
	}
	if account.Role != userdomain.RoleAdmin {
		writeError(w, http.StatusForbidden, "forbidden", "access denied")
		return nil, false
	}
	return account, true
}
