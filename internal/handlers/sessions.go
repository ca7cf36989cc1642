package handlers

import (
	"context"
	"net/http"

	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/services"
	pkghttp "github.com/BradenHooton/parliament/pkg/http"
)

// SessionService defines the session log operations
type SessionService interface {
	ListSessions(ctx context.Context, filter services.SessionFilter) ([]*models.Session, error)
	GetSession(ctx context.Context, id int64) (*models.Session, error)
	CreateSession(ctx context.Context, session *models.Session) (*models.Session, error)
	UpdateSession(ctx context.Context, id int64, changes *models.Session) (*models.Session, error)
	DeleteSession(ctx context.Context, id int64) error
	RecordAttendance(ctx context.Context, id int64, attendeeIDs []int64) (*models.Session, error)
}

type SessionHandler struct {
	service SessionService
}

func NewSessionHandler(service SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// SessionRequest is the editable part of a session. Status is optional on update and
// may only move between scheduled and cancelled.
type SessionRequest struct {
	Title           string   `json:"title" validate:"required,max=300"`
	Date            string   `json:"date" validate:"required"`
	Time            string   `json:"time"`
	Kind            string   `json:"kind" validate:"required,oneof=plenary committee working_group"`
	Status          string   `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Agenda          []string `json:"agenda"`
	DurationMinutes int      `json:"duration_minutes" validate:"gte=0"`
}

func (req SessionRequest) toModel() *models.Session {
	return &models.Session{
		Title:           req.Title,
		Date:            req.Date,
		Time:            req.Time,
		Kind:            req.Kind,
		Status:          req.Status,
		Agenda:          req.Agenda,
		DurationMinutes: req.DurationMinutes,
	}
}

type AttendanceRequest struct {
	AttendeeIDs []int64 `json:"attendee_ids" validate:"required"`
}

type ListSessionsResponse struct {
	Sessions []*models.Session `json:"sessions"`
	Total    int               `json:"total"`
}

// ListSessions supports ?kind= and ?status= filters
//
// @Summary List sessions
// @Param kind query string false "plenary, committee or working_group"
// @Param status query string false "scheduled, completed or cancelled"
// @Produce json
// @Success 200 {object} ListSessionsResponse
// @Router /sessions [get]
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sessions, err := h.service.ListSessions(r.Context(), services.SessionFilter{
		Kind:   query.Get("kind"),
		Status: query.Get("status"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, ListSessionsResponse{Sessions: sessions, Total: len(sessions)})
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	session, err := h.service.GetSession(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.service.CreateSession(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, created)
}

func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req SessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.service.UpdateSession(r.Context(), id, req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, updated)
}

func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSession(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordAttendance replaces the attendee set and completes a scheduled session
//
// @Summary Record attendance
// @Accept json
// @Param id path int true "Session ID"
// @Param request body AttendanceRequest true "Attendees"
// @Produce json
// @Success 200 {object} models.Session
// @Failure 400 {object} pkghttp.ErrorResponse
// @Failure 404 {object} pkghttp.ErrorResponse
// @Router /sessions/{id}/attendance [put]
func (h *SessionHandler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req AttendanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.service.RecordAttendance(r.Context(), id, req.AttendeeIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, session)
}
