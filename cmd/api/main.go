package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"localeventfinder/config"
	_ "localeventfinder/docs"
	"localeventfinder/internal/adapters/auth"
	"localeventfinder/internal/adapters/cache"
	"localeventfinder/internal/adapters/email"
	httpdelivery "localeventfinder/internal/delivery/http"
	"localeventfinder/internal/delivery/http/controllers"
	"localeventfinder/internal/delivery/http/middleware"
	"localeventfinder/internal/domain"
	"localeventfinder/internal/repository/postgres"
	"localeventfinder/internal/services"
	"localeventfinder/migrations"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title LocalEventFinder API
// @version 1.0
// @description Catalog and booking API for local events: venues, organizers, events, and attendee registrations.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(startupCtx); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}
	if err := migrations.Apply(startupCtx, db); err != nil {
		logger.Error("apply migrations", "err", err)
		os.Exit(1)
	}

	venueRepo := postgres.NewVenueRepository(db)
	organizerRepo := postgres.NewOrganizerRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	userRepo := postgres.NewUserRepository(db)

	var listingCache domain.ListingCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(startupCtx).Err(); err != nil {
			logger.Warn("redis unreachable, listings served uncached", "addr", cfg.RedisAddr, "err", err)
		} else {
			listingCache = cache.NewRedisListingCache(rdb)
			defer rdb.Close()
		}
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SES.Region,
			AccessKeyID:        cfg.Email.SES.AccessKeyID,
			SecretAccessKey:    cfg.Email.SES.SecretAccessKey,
			InsecureSkipVerify: cfg.Email.SES.InsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("configure mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	hasher := auth.NewBcryptHasher(12)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	availability := services.NewAvailabilityChecker(eventRepo, serviceTimeout)
	eventService := services.NewEventService(eventRepo, venueRepo, organizerRepo, registrationRepo, availability, listingCache, serviceTimeout)
	venueService := services.NewVenueService(venueRepo, eventRepo, serviceTimeout)
	organizerService := services.NewOrganizerService(organizerRepo, eventRepo, serviceTimeout)
	registrationService := services.NewRegistrationService(registrationRepo, eventRepo, venueRepo, emailService, serviceTimeout)
	authService := services.NewAuthService(userRepo, hasher, issuer, cfg.JWTExpiry)
	userService := services.NewUserService(userRepo, serviceTimeout)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:         controllers.NewAuthController(logger, authService),
		Event:        controllers.NewEventController(logger, eventService),
		Venue:        controllers.NewVenueController(logger, venueService),
		Organizer:    controllers.NewOrganizerController(logger, organizerService),
		Registration: controllers.NewRegistrationController(logger, registrationService),
		User:         controllers.NewUserController(logger, userService),
	}, verifier, logger)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSOrigins, mux))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", "port", cfg.Port, "env", cfg.Environment)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "err", err)
	}
	logger.Info("server stopped")
}
