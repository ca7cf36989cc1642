package handlers

import (
	"net/http"

	"github.com/BradenHooton/parliament/internal/models"
	pkghttp "github.com/BradenHooton/parliament/pkg/http"
)

type PartyHandler struct {
	roster RosterService
}

func NewPartyHandler(roster RosterService) *PartyHandler {
	return &PartyHandler{roster: roster}
}

type PartyRequest struct {
	Name                string `json:"name" validate:"required,max=200"`
	Color               string `json:"color"`
	DeclaredMemberCount int    `json:"declared_member_count" validate:"gte=0"`
	LeaderName          string `json:"leader_name"`
	FoundedYear         int    `json:"founded_year"`
}

func (req PartyRequest) toModel() *models.Party {
	return &models.Party{
		Name:                req.Name,
		Color:               req.Color,
		DeclaredMemberCount: req.DeclaredMemberCount,
		LeaderName:          req.LeaderName,
		FoundedYear:         req.FoundedYear,
	}
}

type ListPartiesResponse struct {
	Parties []*models.Party `json:"parties"`
	Total   int             `json:"total"`
}

func (h *PartyHandler) ListParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.roster.ListParties(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, ListPartiesResponse{Parties: parties, Total: len(parties)})
}

func (h *PartyHandler) GetParty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	party, err := h.roster.GetParty(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, party)
}

// Members lists the legislators whose party name matches the party
func (h *PartyHandler) Members(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	members, err := h.roster.PartyMembers(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, ListLegislatorsResponse{Legislators: members, Total: len(members)})
}

func (h *PartyHandler) CreateParty(w http.ResponseWriter, r *http.Request) {
	var req PartyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.roster.CreateParty(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, created)
}

func (h *PartyHandler) UpdateParty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req PartyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.roster.UpdateParty(r.Context(), id, req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, updated)
}

// DeleteParty does not cascade to members
func (h *PartyHandler) DeleteParty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.roster.DeleteParty(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
