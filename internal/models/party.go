package models

import (
	"strings"
	"time"
)

type Party struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name" validate:"required,max=200"`
	Color               string    `json:"color" validate:"omitempty,hexcolor"`
	DeclaredMemberCount int       `json:"declared_member_count" validate:"gte=0"`
	LeaderName          string    `json:"leader_name" validate:"max=200"`
	FoundedYear         int       `json:"founded_year" validate:"omitempty,gte=1800,lte=2100"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Validate trims text fields and checks the record
func (p *Party) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.LeaderName = strings.TrimSpace(p.LeaderName)
	p.Color = strings.TrimSpace(p.Color)
	return validateRecord(p)
}

func (p *Party) Clone() *Party {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
