package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "localeventfinder/internal/delivery/http/helpers"
	"localeventfinder/internal/domain"
)

// OrganizerRequest is the request body for POST /organizers and PUT /organizers/{organizerID}.
type OrganizerRequest struct {
	Name         string `json:"name"`
	ContactPhone string `json:"contact_phone"`
	Email        string `json:"email"`
}

// Validate implements Validator.
func (o OrganizerRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(o.Name) == "" {
		errs = append(errs, "name is required")
	}
	email := strings.TrimSpace(strings.ToLower(o.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// OrganizerSuccessResponse is the success response envelope for single-organizer endpoints.
type OrganizerSuccessResponse struct {
	Data  *domain.Organizer `json:"data"`
	Error *h.APIError       `json:"error"`
}

// OrganizerListSuccessResponse is the success response envelope for organizer list endpoints.
type OrganizerListSuccessResponse struct {
	Data  []*domain.Organizer `json:"data"`
	Error *h.APIError         `json:"error"`
}

type OrganizerController struct {
	Logger  *slog.Logger
	Service domain.OrganizerService
}

func NewOrganizerController(logger *slog.Logger, svc domain.OrganizerService) *OrganizerController {
	return &OrganizerController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create an organizer
// @Tags organizers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body OrganizerRequest true "Organizer data"
// @Success 201 {object} controllers.OrganizerSuccessResponse "data contains the created organizer"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizers [post]
func (c *OrganizerController) Create(w http.ResponseWriter, r *http.Request) {
	var req OrganizerRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	organizer, err := c.Service.Create(r.Context(), &domain.Organizer{
		Name:         strings.TrimSpace(req.Name),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
	})
	if err != nil {
		c.writeOrganizerError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, organizer)
}

// Update godoc
// @Summary Update an organizer
// @Tags organizers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param organizerID path string true "Organizer ID (UUID)"
// @Param body body OrganizerRequest true "Organizer data"
// @Success 200 {object} controllers.OrganizerSuccessResponse "data contains the updated organizer"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizers/{organizerID} [put]
func (c *OrganizerController) Update(w http.ResponseWriter, r *http.Request) {
	organizerID := r.PathValue("organizerID")
	if !uuidRegex.MatchString(organizerID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid organizerID")
		return
	}
	var req OrganizerRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	organizer, err := c.Service.Update(r.Context(), organizerID, &domain.Organizer{
		Name:         strings.TrimSpace(req.Name),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
	})
	if err != nil {
		c.writeOrganizerError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, organizer)
}

// Delete godoc
// @Summary Delete an organizer
// @Description Fails with 409 while events still reference the organizer.
// @Tags organizers
// @Produce json
// @Security BearerAuth
// @Param organizerID path string true "Organizer ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizers/{organizerID} [delete]
func (c *OrganizerController) Delete(w http.ResponseWriter, r *http.Request) {
	organizerID := r.PathValue("organizerID")
	if !uuidRegex.MatchString(organizerID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid organizerID")
		return
	}
	if err := c.Service.Delete(r.Context(), organizerID); err != nil {
		c.writeOrganizerError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Status: "deleted"})
}

// GetByID godoc
// @Summary Get an organizer by ID
// @Tags organizers
// @Produce json
// @Param organizerID path string true "Organizer ID (UUID)"
// @Success 200 {object} controllers.OrganizerSuccessResponse "data contains the organizer"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizers/{organizerID} [get]
func (c *OrganizerController) GetByID(w http.ResponseWriter, r *http.Request) {
	organizerID := r.PathValue("organizerID")
	if !uuidRegex.MatchString(organizerID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid organizerID")
		return
	}
	organizer, err := c.Service.GetByID(r.Context(), organizerID)
	if err != nil {
		c.writeOrganizerError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, organizer)
}

// List godoc
// @Summary List all organizers
// @Tags organizers
// @Produce json
// @Success 200 {object} controllers.OrganizerListSuccessResponse "data contains the organizers"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizers [get]
func (c *OrganizerController) List(w http.ResponseWriter, r *http.Request) {
	organizers, err := c.Service.List(r.Context())
	if err != nil {
		c.writeOrganizerError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, organizers)
}

// ListByEmailDomain godoc
// @Summary List organizers by email domain
// @Description Returns organizers whose email address is under the given domain (case-insensitive).
// @Tags organizers
// @Produce json
// @Param domain path string true "Email domain, e.g. example.com"
// @Success 200 {object} controllers.OrganizerListSuccessResponse "data contains the organizers"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizers/email-domain/{domain} [get]
func (c *OrganizerController) ListByEmailDomain(w http.ResponseWriter, r *http.Request) {
	emailDomain := r.PathValue("domain")
	if emailDomain == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing domain")
		return
	}
	organizers, err := c.Service.ListByEmailDomain(r.Context(), emailDomain)
	if err != nil {
		c.writeOrganizerError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, organizers)
}

// ListWithEvents godoc
// @Summary List organizers with the events they run
// @Tags organizers
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains organizers each with their events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizers/with-events [get]
func (c *OrganizerController) ListWithEvents(w http.ResponseWriter, r *http.Request) {
	organizers, err := c.Service.ListWithEvents(r.Context())
	if err != nil {
		c.writeOrganizerError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, organizers)
}

func (c *OrganizerController) writeOrganizerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "organizer not found")
	case errors.Is(err, domain.ErrConflict):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "organizer still has events")
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}
