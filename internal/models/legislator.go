package models

import (
	"strings"
	"time"
)

// Legislator is a parliament member. PartyName joins to Party.Name and is not enforced.
type Legislator struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name" validate:"required,max=200"`
	PartyName         *string   `json:"party_name"`
	DistrictLabel     string    `json:"district_label" validate:"max=200"`
	AttendancePercent int       `json:"attendance_percent" validate:"gte=0,lte=100"`
	VoteCount         int       `json:"vote_count" validate:"gte=0"`
	SpeechCount       int       `json:"speech_count" validate:"gte=0"`
	Email             string    `json:"email" validate:"omitempty,email,max=254"`
	Phone             string    `json:"phone" validate:"max=40"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Normalize trims text fields and turns a blank party into no party
func (l *Legislator) Normalize() {
	l.Name = strings.TrimSpace(l.Name)
	l.DistrictLabel = strings.TrimSpace(l.DistrictLabel)
	l.Email = strings.TrimSpace(l.Email)
	l.Phone = strings.TrimSpace(l.Phone)
	if l.PartyName != nil {
		name := strings.TrimSpace(*l.PartyName)
		if name == "" {
			l.PartyName = nil
		} else {
			l.PartyName = &name
		}
	}
}

// Validate normalizes and checks the record
func (l *Legislator) Validate() error {
	l.Normalize()
	return validateRecord(l)
}

// InParty reports whether the legislator names the given party
func (l *Legislator) InParty(partyName string) bool {
	return l.PartyName != nil && *l.PartyName == partyName
}

// Clone returns a deep copy
func (l *Legislator) Clone() *Legislator {
	if l == nil {
		return nil
	}
	c := *l
	if l.PartyName != nil {
		name := *l.PartyName
		c.PartyName = &name
	}
	return &c
}
