package models

import (
	"strings"
	"time"
)

const (
	RoleAdmin      = "admin"
	RoleLegislator = "legislator"

	// AdminLoginName is the reserved login of the seeded administrator.
	AdminLoginName = "admin"
)

// Account is a login credential. PasswordHash never leaves the service layer.
type Account struct {
	LoginName    string    `json:"login_name" validate:"required,min=3,max=64"`
	PasswordHash string    `json:"-" validate:"required"`
	Role         string    `json:"role" validate:"required,oneof=admin legislator"`
	DisplayName  string    `json:"display_name" validate:"required,max=200"`
	LegislatorID *int64    `json:"legislator_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewAccount builds a validated account record
func NewAccount(loginName, passwordHash, role, displayName string, legislatorID *int64) (*Account, error) {
	account := &Account{
		LoginName:    strings.TrimSpace(loginName),
		PasswordHash: passwordHash,
		Role:         role,
		DisplayName:  strings.TrimSpace(displayName),
		LegislatorID: legislatorID,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	return account, nil
}

// Validate enforces field rules and the role/legislator linkage
func (a *Account) Validate() error {
	if err := validateRecord(a); err != nil {
		return err
	}
	switch {
	case strings.ContainsAny(a.LoginName, " \t\r\n"):
		return &ValidationError{Field: "login_name", Reason: "must not contain whitespace"}
	case a.Role == RoleLegislator && a.LegislatorID == nil:
		return &ValidationError{Field: "legislator_id", Reason: "required for the legislator role"}
	case a.Role == RoleAdmin && a.LegislatorID != nil:
		return &ValidationError{Field: "legislator_id", Reason: "must be empty for the admin role"}
	}
	return nil
}

// IsReservedAdmin reports whether this is the undeletable administrator account
func (a *Account) IsReservedAdmin() bool {
	return a.LoginName == AdminLoginName
}

// Clone returns a deep copy
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.LegislatorID != nil {
		id := *a.LegislatorID
		c.LegislatorID = &id
	}
	return &c
}

// AccountView is an account with its secret removed
type AccountView struct {
	LoginName    string    `json:"login_name"`
	Role         string    `json:"role"`
	DisplayName  string    `json:"display_name"`
	LegislatorID *int64    `json:"legislator_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Redacted strips the password hash
func (a *Account) Redacted() AccountView {
	c := a.Clone()
	return AccountView{
		LoginName:    c.LoginName,
		Role:         c.Role,
		DisplayName:  c.DisplayName,
		LegislatorID: c.LegislatorID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
