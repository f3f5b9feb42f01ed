package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nohlan/stayhub/internal/api/middleware"
	"github.com/nohlan/stayhub/internal/application/services"
	"github.com/nohlan/stayhub/internal/domain/entities"
	"github.com/nohlan/stayhub/internal/domain/policy"
)

// UserService defines the user operations used by the handler.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*entities.User, error)
	GetByID(ctx context.Context, id string) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	UpdateProfile(ctx context.Context, p policy.Principal, userID string, in services.UpdateProfileInput) (*entities.User, error)
	AdminUpdate(ctx context.Context, p policy.Principal, userID string, in services.AdminUpdateInput) (*entities.User, error)
	Delete(ctx context.Context, p policy.Principal, userID string) error
}

// UserHandler handles user endpoints.
type UserHandler struct {
	service UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register handles POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.service.Register(r.Context(), services.RegisterInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Password:  payload.Password,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	IsAdmin   *bool   `json:"is_admin"`
}

// UpdateUser handles PUT /api/users/{id}. Regular users may rename
// themselves; the admin path additionally changes email and the admin
// flag.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	userID := r.PathValue("id")

	var user *entities.User
	var err error
	if principal.IsAdmin {
		user, err = h.service.AdminUpdate(r.Context(), principal, userID, services.AdminUpdateInput{
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Email:     payload.Email,
			IsAdmin:   payload.IsAdmin,
		})
	} else {
		if payload.Email != nil || payload.IsAdmin != nil {
			respondWithError(w, http.StatusBadRequest, "email and is_admin cannot be changed")
			return
		}
		in := services.UpdateProfileInput{}
		if payload.FirstName != nil {
			in.FirstName = *payload.FirstName
		}
		if payload.LastName != nil {
			in.LastName = *payload.LastName
		}
		user, err = h.service.UpdateProfile(r.Context(), principal, userID, in)
	}
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
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
