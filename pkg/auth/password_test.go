package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCheckPasswordPolicy(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		shouldFail  bool
		wantReasons int
	}{
		{name: "valid policy example", password: "Passw0rd!", shouldFail: false},
		{name: "valid seeded admin password", password: "Admin123!", shouldFail: false},
		{name: "valid with several symbols", password: "Secure#P@ssw0rd", shouldFail: false},
		{name: "no uppercase and no symbol", password: "password1", shouldFail: true, wantReasons: 2},
		{name: "too short", password: "Pass1!", shouldFail: true, wantReasons: 1},
		{name: "missing lowercase", password: "SECUREPASS@123", shouldFail: true, wantReasons: 1},
		{name: "missing digit", password: "SecurePass@xyz", shouldFail: true, wantReasons: 1},
		{name: "symbol outside allowed set", password: "SecurePass123^", shouldFail: true, wantReasons: 2},
		{name: "space is not allowed", password: "Secure Pass1!", shouldFail: true, wantReasons: 1},
		{name: "non ascii letter", password: "Пароль123!Ab", shouldFail: true, wantReasons: 1},
		{name: "empty", password: "", shouldFail: true, wantReasons: 5},
		{name: "too long", password: "Aa1!" + strings.Repeat("x", 80), shouldFail: true, wantReasons: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPasswordPolicy(tt.password)

			if !tt.shouldFail {
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
				return
			}

			var violation *PasswordPolicyViolation
			if !errors.As(err, &violation) {
				t.Fatalf("expected *PasswordPolicyViolation, got: %v", err)
			}
			if len(violation.Reasons) != tt.wantReasons {
				t.Errorf("expected %d reasons, got %d: %v", tt.wantReasons, len(violation.Reasons), violation.Reasons)
			}
		})
	}
}

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	password := "SecureP@ss123"

	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if hash == "" {
		t.Error("hash should not be empty")
	}

	if hash == password {
		t.Error("hash should not equal plaintext password")
	}

	if err := hasher.Compare(hash, password); err != nil {
		t.Errorf("Compare with correct password failed: %v", err)
	}

	if err := hasher.Compare(hash, "WrongPassword123!"); !errors.Is(err, ErrMismatch) {
		t.Errorf("Compare with wrong password should return ErrMismatch, got: %v", err)
	}
}

func TestBcryptHasher_RejectsEmpty(t *testing.T) {
	if _, err := NewBcryptHasher(bcrypt.MinCost).Hash(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	if got := NewBcryptHasher(1).Cost; got != DefaultBcryptCost {
		t.Errorf("cost = %d, want %d", got, DefaultBcryptCost)
	}
	if got := NewBcryptHasher(bcrypt.MinCost).Cost; got != bcrypt.MinCost {
		t.Errorf("cost = %d, want %d", got, bcrypt.MinCost)
	}
}
