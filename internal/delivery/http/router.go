package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"localeventfinder/internal/delivery/http/controllers"
	"localeventfinder/internal/delivery/http/middleware"
	"localeventfinder/internal/domain"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Event        *controllers.EventController
	Venue        *controllers.VenueController
	Organizer    *controllers.OrganizerController
	Registration *controllers.RegistrationController
	User         *controllers.UserController
}

// NewRouter initializes the HTTP router with all application routes.
// Role gates: catalog reads are public or any-authenticated; catalog writes
// need organizer or admin; destructive and administrative routes need admin.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier, logger)
	anyRole := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(next)
	}
	staffOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRoles(domain.RoleAdmin, domain.RoleOrganizer)(next))
	}
	adminOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRoles(domain.RoleAdmin)(next))
	}

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Events
	mux.HandleFunc("GET /events", c.Event.List)
	mux.HandleFunc("GET /events/upcoming", anyRole(c.Event.ListUpcoming))
	mux.HandleFunc("GET /events/category/{category}", anyRole(c.Event.ListByCategory))
	mux.HandleFunc("GET /events/{eventID}", anyRole(c.Event.GetByID))
	mux.HandleFunc("POST /events", staffOnly(c.Event.Create))
	mux.HandleFunc("PUT /events/{eventID}", staffOnly(c.Event.Update))
	mux.HandleFunc("DELETE /events/{eventID}", adminOnly(c.Event.Delete))

	// Venues
	mux.HandleFunc("GET /venues", c.Venue.List)
	mux.HandleFunc("GET /venues/capacity", c.Venue.ListByCapacity)
	mux.HandleFunc("GET /venues/stats", c.Venue.Stats)
	mux.HandleFunc("GET /venues/with-events", c.Venue.ListWithEvents)
	mux.HandleFunc("GET /venues/{venueID}", c.Venue.GetByID)
	mux.HandleFunc("POST /venues", adminOnly(c.Venue.Create))
	mux.HandleFunc("PUT /venues/{venueID}", adminOnly(c.Venue.Update))
	mux.HandleFunc("DELETE /venues/{venueID}", adminOnly(c.Venue.Delete))

	// Organizers
	mux.HandleFunc("GET /organizers", c.Organizer.List)
	mux.HandleFunc("GET /organizers/email-domain/{domain}", c.Organizer.ListByEmailDomain)
	mux.HandleFunc("GET /organizers/with-events", c.Organizer.ListWithEvents)
	mux.HandleFunc("GET /organizers/{organizerID}", c.Organizer.GetByID)
	mux.HandleFunc("POST /organizers", adminOnly(c.Organizer.Create))
	mux.HandleFunc("PUT /organizers/{organizerID}", adminOnly(c.Organizer.Update))
	mux.HandleFunc("DELETE /organizers/{organizerID}", adminOnly(c.Organizer.Delete))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", anyRole(c.Registration.Register))
	mux.HandleFunc("GET /events/{eventID}/registrations", staffOnly(c.Registration.ListByEvent))
	mux.HandleFunc("GET /registrations", adminOnly(c.Registration.List))
	mux.HandleFunc("GET /registrations/me", anyRole(c.Registration.ListMine))
	mux.HandleFunc("GET /registrations/{registrationID}", adminOnly(c.Registration.GetByID))
	mux.HandleFunc("DELETE /registrations/{registrationID}", anyRole(c.Registration.Cancel))

	// Users
	mux.HandleFunc("GET /users/me", anyRole(c.User.Me))
	mux.HandleFunc("GET /users", adminOnly(c.User.List))
	mux.HandleFunc("PUT /users/{userID}/role", adminOnly(c.User.UpdateRole))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
