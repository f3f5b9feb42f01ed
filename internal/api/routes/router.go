package routes

import (
	"net/http"

	"github.com/nohlan/stayhub/internal/api/handlers"
	"github.com/nohlan/stayhub/internal/api/middleware"
	"github.com/nohlan/stayhub/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	amenityHandler *handlers.AmenityHandler
	placeHandler   *handlers.PlaceHandler
	reviewHandler  *handlers.ReviewHandler

	auth    *middleware.Auth
	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	amenityHandler *handlers.AmenityHandler,
	placeHandler *handlers.PlaceHandler,
	reviewHandler *handlers.ReviewHandler,
	auth *middleware.Auth,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		authHandler:    authHandler,
		userHandler:    userHandler,
		amenityHandler: amenityHandler,
		placeHandler:   placeHandler,
		reviewHandler:  reviewHandler,

		auth:    auth,
		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)

	// User endpoints. Registration is open; mutations require a token.
	r.mux.HandleFunc("POST /api/users", r.userHandler.Register)
	r.mux.HandleFunc("GET /api/users", r.userHandler.ListUsers)
	r.mux.HandleFunc("GET /api/users/{id}", r.userHandler.GetUser)
	r.mux.HandleFunc("PUT /api/users/{id}", r.auth.Require(r.userHandler.UpdateUser))
	r.mux.HandleFunc("DELETE /api/users/{id}", r.auth.Require(r.userHandler.DeleteUser))

	// Amenity endpoints. Reads are public, writes are admin only (the
	// service enforces the role check).
	r.mux.HandleFunc("GET /api/amenities", r.amenityHandler.ListAmenities)
	r.mux.HandleFunc("GET /api/amenities/{id}", r.amenityHandler.GetAmenity)
	r.mux.HandleFunc("POST /api/amenities", r.auth.Require(r.amenityHandler.CreateAmenity))
	r.mux.HandleFunc("PUT /api/amenities/{id}", r.auth.Require(r.amenityHandler.UpdateAmenity))
	r.mux.HandleFunc("DELETE /api/amenities/{id}", r.auth.Require(r.amenityHandler.DeleteAmenity))

	// Place endpoints
	r.mux.HandleFunc("GET /api/places", r.placeHandler.ListPlaces)
	r.mux.HandleFunc("GET /api/places/{id}", r.placeHandler.GetPlace)
	r.mux.HandleFunc("GET /api/places/{id}/reviews", r.reviewHandler.ListPlaceReviews)
	r.mux.HandleFunc("POST /api/places", r.auth.Require(r.placeHandler.CreatePlace))
	r.mux.HandleFunc("PUT /api/places/{id}", r.auth.Require(r.placeHandler.UpdatePlace))
	r.mux.HandleFunc("DELETE /api/places/{id}", r.auth.Require(r.placeHandler.DeletePlace))

	// Review endpoints
	r.mux.HandleFunc("GET /api/reviews", r.reviewHandler.ListReviews)
	r.mux.HandleFunc("GET /api/reviews/{id}", r.reviewHandler.GetReview)
	r.mux.HandleFunc("POST /api/reviews", r.auth.Require(r.reviewHandler.CreateReview))
	r.mux.HandleFunc("PUT /api/reviews/{id}", r.auth.Require(r.reviewHandler.UpdateReview))
	r.mux.HandleFunc("DELETE /api/reviews/{id}", r.auth.Require(r.reviewHandler.DeleteReview))

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	handler = middleware.CORSMiddleware(handler)

	return handler
}
