package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nohlan/stayhub/internal/api/middleware"
	"github.com/nohlan/stayhub/internal/domain/entities"
	"github.com/nohlan/stayhub/internal/domain/policy"
)

// AmenityService defines the amenity operations used by the handler.
type AmenityService interface {
	Create(ctx context.Context, p policy.Principal, name, description string) (*entities.Amenity, error)
	GetByID(ctx context.Context, id string) (*entities.Amenity, error)
	List(ctx context.Context) ([]*entities.Amenity, error)
	Update(ctx context.Context, p policy.Principal, id, name, description string) (*entities.Amenity, error)
	Delete(ctx context.Context, p policy.Principal, id string) error
}

// AmenityHandler handles amenity endpoints.
type AmenityHandler struct {
	service AmenityService
}

// NewAmenityHandler creates a new amenity handler.
func NewAmenityHandler(service AmenityService) *AmenityHandler {
	return &AmenityHandler{service: service}
}

type amenityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateAmenity handles POST /api/amenities
func (h *AmenityHandler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload amenityRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	amenity, err := h.service.Create(r.Context(), principal, payload.Name, payload.Description)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, amenity)
}

// GetAmenity handles GET /api/amenities/{id}
func (h *AmenityHandler) GetAmenity(w http.ResponseWriter, r *http.Request) {
	amenity, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, amenity)
}

// ListAmenities handles GET /api/amenities
func (h *AmenityHandler) ListAmenities(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"amenities": amenities,
		"count":     len(amenities),
	})
}

// UpdateAmenity handles PUT /api/amenities/{id}
func (h *AmenityHandler) UpdateAmenity(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload amenityRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	amenity, err := h.service.Update(r.Context(), principal, r.PathValue("id"), payload.Name, payload.Description)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, amenity)
}

// DeleteAmenity handles DELETE /api/amenities/{id}
func (h *AmenityHandler) DeleteAmenity(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), principal, r.PathValue("id")); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
