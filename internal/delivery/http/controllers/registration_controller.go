package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "localeventfinder/internal/delivery/http/helpers"
	"localeventfinder/internal/delivery/http/middleware"
	"localeventfinder/internal/domain"
)

// RegisterAttendeeRequest is the request body for POST /events/{eventID}/registrations.
type RegisterAttendeeRequest struct {
	AttendeeName  string `json:"attendee_name"`
	AttendeeEmail string `json:"attendee_email"`
}

// Validate implements Validator.
func (r RegisterAttendeeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.AttendeeName) == "" {
		errs = append(errs, "attendee_name is required")
	}
	email := strings.TrimSpace(strings.ToLower(r.AttendeeEmail))
	if email == "" {
		errs = append(errs, "attendee_email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid attendee_email format")
	}
	return errs
}

// RegistrationSuccessResponse is the success response envelope for single-registration endpoints.
type RegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *h.APIError          `json:"error"`
}

// RegistrationListResponse is the data payload for GET /registrations.
type RegistrationListResponse struct {
	Registrations []*domain.Registration `json:"registrations"`
	Pagination    h.PaginationMeta       `json:"pagination"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register an attendee for an event
// @Description Admits the attendee when the event exists, the email is not already registered for it, and the event is not full. Sends a confirmation email on success (best effort).
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RegisterAttendeeRequest true "Attendee data"
// @Success 201 {object} controllers.RegistrationSuccessResponse "data contains the created registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered or event full)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req RegisterAttendeeRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.AdmitAttendee(r.Context(), eventID, req.AttendeeName, req.AttendeeEmail)
	if err != nil {
		c.writeRegistrationError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// Cancel godoc
// @Summary Cancel a registration
// @Description Removes a registration. Admins may cancel any registration; other callers only one whose attendee email matches their own.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID} [delete]
func (c *RegistrationController) Cancel(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if !uuidRegex.MatchString(registrationID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid registrationID")
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.CancelRegistration(r.Context(), registrationID, id.Email, id.Role); err != nil {
		c.writeRegistrationError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Status: "cancelled"})
}

// List godoc
// @Summary List registrations
// @Description Returns one page of registrations across all events, newest first.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains registrations and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations [get]
func (c *RegistrationController) List(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePagination(r)
	regs, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		c.writeRegistrationError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, RegistrationListResponse{
		Registrations: regs,
		Pagination:    h.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// GetByID godoc
// @Summary Get a registration by ID
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} controllers.RegistrationSuccessResponse "data contains the registration"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID} [get]
func (c *RegistrationController) GetByID(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if !uuidRegex.MatchString(registrationID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid registrationID")
		return
	}
	reg, err := c.Service.GetByID(r.Context(), registrationID)
	if err != nil {
		c.writeRegistrationError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, reg)
}

// ListMine godoc
// @Summary List the caller's registrations
// @Description Returns the registrations whose attendee email matches the authenticated user's email.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the registrations"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/me [get]
func (c *RegistrationController) ListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	regs, err := c.Service.ListByEmail(r.Context(), id.Email)
	if err != nil {
		c.writeRegistrationError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, regs)
}

// ListByEvent godoc
// @Summary List registrations for an event
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the registrations"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [get]
func (c *RegistrationController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	regs, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		c.writeRegistrationError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, regs)
}

func (c *RegistrationController) writeRegistrationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrRegistrationNotFound), errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "registration not found")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "attendee already registered for this event")
	case errors.Is(err, domain.ErrCapacityExceeded):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "event is full")
	case errors.Is(err, domain.ErrForbidden):
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}
