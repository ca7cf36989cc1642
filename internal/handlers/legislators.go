package handlers

import (
	"context"
	"net/http"

	"github.com/BradenHooton/parliament/internal/models"
	"github.com/BradenHooton/parliament/internal/services"
	"github.com/BradenHooton/parliament/internal/stats"
	pkghttp "github.com/BradenHooton/parliament/pkg/http"
)

// RosterService defines the legislator and party operations
type RosterService interface {
	ListLegislators(ctx context.Context, filter services.LegislatorFilter) ([]*models.Legislator, error)
	GetLegislator(ctx context.Context, id int64) (*models.Legislator, error)
	CreateLegislator(ctx context.Context, l *models.Legislator) (*models.Legislator, error)
	UpdateLegislator(ctx context.Context, id int64, l *models.Legislator) (*models.Legislator, error)
	DeleteLegislator(ctx context.Context, id int64) error

	ListParties(ctx context.Context) ([]*models.Party, error)
	GetParty(ctx context.Context, id int64) (*models.Party, error)
	PartyMembers(ctx context.Context, id int64) ([]*models.Legislator, error)
	CreateParty(ctx context.Context, p *models.Party) (*models.Party, error)
	UpdateParty(ctx context.Context, id int64, p *models.Party) (*models.Party, error)
	DeleteParty(ctx context.Context, id int64) error
}

// AttendanceReporter computes session-derived attendance
type AttendanceReporter interface {
	LegislatorAttendance(ctx context.Context, legislatorID int64) (*stats.AttendanceRecord, error)
}

type LegislatorHandler struct {
	roster     RosterService
	attendance AttendanceReporter
}

func NewLegislatorHandler(roster RosterService, attendance AttendanceReporter) *LegislatorHandler {
	return &LegislatorHandler{roster: roster, attendance: attendance}
}

// LegislatorRequest is the writable part of a legislator
type LegislatorRequest struct {
	Name              string  `json:"name" validate:"required,max=200"`
	PartyName         *string `json:"party_name"`
	DistrictLabel     string  `json:"district_label"`
	AttendancePercent int     `json:"attendance_percent" validate:"gte=0,lte=100"`
	VoteCount         int     `json:"vote_count" validate:"gte=0"`
	SpeechCount       int     `json:"speech_count" validate:"gte=0"`
	Email             string  `json:"email" validate:"omitempty,email"`
	Phone             string  `json:"phone"`
}

func (req LegislatorRequest) toModel() *models.Legislator {
	return &models.Legislator{
		Name:              req.Name,
		PartyName:         req.PartyName,
		DistrictLabel:     req.DistrictLabel,
		AttendancePercent: req.AttendancePercent,
		VoteCount:         req.VoteCount,
		SpeechCount:       req.SpeechCount,
		Email:             req.Email,
		Phone:             req.Phone,
	}
}

type ListLegislatorsResponse struct {
	Legislators []*models.Legislator `json:"legislators"`
	Total       int                  `json:"total"`
}

// ListLegislators supports ?party= and a case-insensitive ?q= name search
//
// @Summary List legislators
// @Param party query string false "Party name"
// @Param q query string false "Name contains"
// @Produce json
// @Success 200 {object} ListLegislatorsResponse
// @Router /legislators [get]
func (h *LegislatorHandler) ListLegislators(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	legislators, err := h.roster.ListLegislators(r.Context(), services.LegislatorFilter{
		PartyName: query.Get("party"),
		Query:     query.Get("q"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, ListLegislatorsResponse{Legislators: legislators, Total: len(legislators)})
}

func (h *LegislatorHandler) GetLegislator(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	legislator, err := h.roster.GetLegislator(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, legislator)
}

// Attendance reports attended over completed sessions for one legislator
func (h *LegislatorHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	record, err := h.attendance.LegislatorAttendance(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, record)
}

func (h *LegislatorHandler) CreateLegislator(w http.ResponseWriter, r *http.Request) {
	var req LegislatorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.roster.CreateLegislator(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, created)
}

func (h *LegislatorHandler) UpdateLegislator(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req LegislatorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.roster.UpdateLegislator(r.Context(), id, req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, updated)
}

// DeleteLegislator leaves the linked account and recorded attendance in place
func (h *LegislatorHandler) DeleteLegislator(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.roster.DeleteLegislator(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
