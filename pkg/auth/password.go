package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultBcryptCost = 12
	MinPasswordLen    = 8
	MaxPasswordLen    = 72 // bcrypt ignores input past 72 bytes

	// AllowedSymbols is the fixed symbol set a password must draw at least one character from.
	AllowedSymbols = "@$!%*?&#"
)

// PasswordPolicyViolation lists every rule a candidate secret failed
type PasswordPolicyViolation struct {
	Reasons []string
}

func (e *PasswordPolicyViolation) Error() string {
	if len(e.Reasons) == 0 {
		return "password policy violation"
	}
	return "password policy violation: " + strings.Join(e.Reasons, "; ")
}

// CheckPasswordPolicy enforces the account password rules: at least 8 characters drawn from
// letters, digits and AllowedSymbols, with at least one of each class.
func CheckPasswordPolicy(password string) error {
	reasons := make([]string, 0)

	if len(password) < MinPasswordLen {
		reasons = append(reasons, fmt.Sprintf("must be at least %d characters", MinPasswordLen))
	}
	if len(password) > MaxPasswordLen {
		reasons = append(reasons, fmt.Sprintf("must be at most %d characters", MaxPasswordLen))
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	hasSymbol := false
	hasForeign := false

	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(AllowedSymbols, r):
			hasSymbol = true
		default:
			hasForeign = true
		}
	}

	if !hasUpper {
		reasons = append(reasons, "must contain at least one uppercase letter")
	}
	if !hasLower {
		reasons = append(reasons, "must contain at least one lowercase letter")
	}
	if !hasDigit {
		reasons = append(reasons, "must contain at least one digit")
	}
	if !hasSymbol {
		reasons = append(reasons, fmt.Sprintf("must contain at least one of %s", AllowedSymbols))
	}
	if hasForeign {
		reasons = append(reasons, fmt.Sprintf("may only contain letters, digits and %s", AllowedSymbols))
	}

	if len(reasons) > 0 {
		return &PasswordPolicyViolation{Reasons: reasons}
	}
	return nil
}

// BcryptHasher hashes and verifies secrets with a fixed cost
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher clamps cost into bcrypt's accepted range
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Compare returns nil on match and ErrMismatch otherwise
func (h *BcryptHasher) Compare(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}

var ErrMismatch = errors.New("password does not match")
