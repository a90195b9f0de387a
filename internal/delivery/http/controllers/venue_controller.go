package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	h "localeventfinder/internal/delivery/http/helpers"
	"localeventfinder/internal/domain"
)

// VenueRequest is the request body for POST /venues and PUT /venues/{venueID}.
type VenueRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

// Validate implements Validator.
func (v VenueRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(v.Name) == "" {
		errs = append(errs, "name is required")
	}
	if v.Capacity <= 0 {
		errs = append(errs, "capacity must be positive")
	}
	return errs
}

// VenueSuccessResponse is the success response envelope for single-venue endpoints.
type VenueSuccessResponse struct {
	Data  *domain.Venue `json:"data"`
	Error *h.APIError   `json:"error"`
}

// VenueListSuccessResponse is the success response envelope for venue list endpoints.
type VenueListSuccessResponse struct {
	Data  []*domain.Venue `json:"data"`
	Error *h.APIError     `json:"error"`
}

type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueService
}

func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body VenueRequest true "Venue data"
// @Success 201 {object} controllers.VenueSuccessResponse "data contains the created venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [post]
func (c *VenueController) Create(w http.ResponseWriter, r *http.Request) {
	var req VenueRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Service.Create(r.Context(), &domain.Venue{
		Name:     strings.TrimSpace(req.Name),
		Address:  req.Address,
		Capacity: req.Capacity,
	})
	if err != nil {
		c.writeVenueError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// Update godoc
// @Summary Update a venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Param body body VenueRequest true "Venue data"
// @Success 200 {object} controllers.VenueSuccessResponse "data contains the updated venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [put]
func (c *VenueController) Update(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if !uuidRegex.MatchString(venueID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid venueID")
		return
	}
	var req VenueRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Service.Update(r.Context(), venueID, &domain.Venue{
		Name:     strings.TrimSpace(req.Name),
		Address:  req.Address,
		Capacity: req.Capacity,
	})
	if err != nil {
		c.writeVenueError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, venue)
}

// Delete godoc
// @Summary Delete a venue
// @Description Fails with 409 while events still reference the venue.
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [delete]
func (c *VenueController) Delete(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if !uuidRegex.MatchString(venueID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid venueID")
		return
	}
	if err := c.Service.Delete(r.Context(), venueID); err != nil {
		c.writeVenueError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Status: "deleted"})
}

// GetByID godoc
// @Summary Get a venue by ID
// @Tags venues
// @Produce json
// @Param venueID path string true "Venue ID (UUID)"
// @Success 200 {object} controllers.VenueSuccessResponse "data contains the venue"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [get]
func (c *VenueController) GetByID(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if !uuidRegex.MatchString(venueID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid venueID")
		return
	}
	venue, err := c.Service.GetByID(r.Context(), venueID)
	if err != nil {
		c.writeVenueError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, venue)
}

// List godoc
// @Summary List all venues
// @Tags venues
// @Produce json
// @Success 200 {object} controllers.VenueListSuccessResponse "data contains the venues"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [get]
func (c *VenueController) List(w http.ResponseWriter, r *http.Request) {
	venues, err := c.Service.List(r.Context())
	if err != nil {
		c.writeVenueError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, venues)
}

// ListByCapacity godoc
// @Summary List venues by capacity range
// @Description Returns venues whose capacity falls within [min, max]. Omitted max means unbounded.
// @Tags venues
// @Produce json
// @Param min query int false "Minimum capacity (default 0)"
// @Param max query int false "Maximum capacity (default unbounded)"
// @Success 200 {object} controllers.VenueListSuccessResponse "data contains the venues"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/capacity [get]
func (c *VenueController) ListByCapacity(w http.ResponseWriter, r *http.Request) {
	minCapacity, ok := parseQueryInt(w, r, "min")
	if !ok {
		return
	}
	maxCapacity, ok := parseQueryInt(w, r, "max")
	if !ok {
		return
	}
	venues, err := c.Service.ListByCapacityRange(r.Context(), minCapacity, maxCapacity)
	if err != nil {
		c.writeVenueError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, venues)
}

// ListWithEvents godoc
// @Summary List venues with their scheduled events
// @Tags venues
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains venues each with their events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/with-events [get]
func (c *VenueController) ListWithEvents(w http.ResponseWriter, r *http.Request) {
	venues, err := c.Service.ListWithEvents(r.Context())
	if err != nil {
		c.writeVenueError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, venues)
}

// Stats godoc
// @Summary Venue catalog statistics
// @Description Returns venue count, total and average capacity, and the total number of events.
// @Tags venues
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the stats"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/stats [get]
func (c *VenueController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.Stats(r.Context())
	if err != nil {
		c.writeVenueError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, stats)
}

func (c *VenueController) writeVenueError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "venue not found")
	case errors.Is(err, domain.ErrConflict):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "venue still has events")
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}

// parseQueryInt reads an optional non-negative integer query parameter. On a
// malformed value it writes a 400 and returns ok=false; a missing value yields 0.
func parseQueryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, true
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}
