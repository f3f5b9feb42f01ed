package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nohlan/stayhub/internal/api/middleware"
	"github.com/nohlan/stayhub/internal/application/services"
	"github.com/nohlan/stayhub/internal/domain/entities"
	"github.com/nohlan/stayhub/internal/domain/policy"
	"github.com/nohlan/stayhub/internal/domain/repositories"
)

// PlaceService defines the place operations used by the handler.
type PlaceService interface {
	Create(ctx context.Context, p policy.Principal, in services.CreatePlaceInput) (*entities.Place, error)
	GetDetail(ctx context.Context, id string) (*entities.PlaceDetail, error)
	List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, error)
	Update(ctx context.Context, p policy.Principal, id string, in services.UpdatePlaceInput) (*entities.Place, error)
	Delete(ctx context.Context, p policy.Principal, id string) error
}

// PlaceHandler handles place endpoints.
type PlaceHandler struct {
	service PlaceService
}

// NewPlaceHandler creates a new place handler.
func NewPlaceHandler(service PlaceService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// placeRequest carries the client-mutable place fields. The owner is
// never part of the payload: it is derived from the acting principal.
type placeRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	AmenityIDs  *[]string `json:"amenity_ids"`
}

// CreatePlace handles POST /api/places
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload placeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	in := services.CreatePlaceInput{
		Title:       payload.Title,
		Description: payload.Description,
		Price:       payload.Price,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
	}
	if payload.AmenityIDs != nil {
		in.AmenityIDs = *payload.AmenityIDs
	}

	place, err := h.service.Create(r.Context(), principal, in)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, place)
}

// GetPlace handles GET /api/places/{id}, returning the composed detail
// view with owner, amenities and reviews.
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

// ListPlaces handles GET /api/places
func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	filter := repositories.PlaceFilter{
		OwnerID: r.URL.Query().Get("owner_id"),
	}

	places, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"places": places,
		"count":  len(places),
	})
}

// UpdatePlace handles PUT /api/places/{id}
func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload placeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	in := services.UpdatePlaceInput{
		Title:       payload.Title,
		Description: payload.Description,
		Price:       payload.Price,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
	}
	if payload.AmenityIDs != nil {
		in.AmenityIDs = *payload.AmenityIDs
	}

	place, err := h.service.Update(r.Context(), principal, r.PathValue("id"), in)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, place)
}

// DeletePlace handles DELETE /api/places/{id}
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
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
