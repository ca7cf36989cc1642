package logger

import (
	"log/slog"
	"strings"
)

// MaskLogin masks a login name for logging (e.g., "d*****1")
func MaskLogin(login string) string {
	switch n := len(login); {
	case n == 0:
		return "[empty]"
	case n <= 2:
		return strings.Repeat("*", n)
	default:
		return login[:1] + strings.Repeat("*", n-2) + login[n-1:]
	}
}

// SanitizedEmail masks an email address for logging (e.g., "u***@e***.com")
func SanitizedEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "[invalid-email]"
	}

	username := parts[0]
	domain := parts[1]

	if len(username) > 1 {
		username = string(username[0]) + strings.Repeat("*", len(username)-1)
	}

	// Keep the TLD
	domainParts := strings.Split(domain, ".")
	if len(domainParts) > 1 {
		for i := 0; i < len(domainParts)-1; i++ {
			domainParts[i] = strings.Repeat("*", len(domainParts[i]))
		}
		domain = strings.Join(domainParts, ".")
	}

	return username + "@" + domain
}

// LoginAttr returns the login name as a slog attribute, masked outside development
func LoginAttr(login, env string) slog.Attr {
	if env == "development" {
		return slog.String("login", login)
	}
	return slog.String("login", MaskLogin(login))
}

// SanitizeQueryString checks if query string contains sensitive parameters
// and returns true if the entire query string should be redacted
func SanitizeQueryString(rawQuery string) bool {
	sensitiveParams := []string{
		"password",
		"secret",
		"token",
		"login",
		"email",
		"phone",
		"auth",
	}

	query := strings.ToLower(rawQuery)
	for _, param := range sensitiveParams {
		if strings.Contains(query, param) {
			return true
		}
	}
	return false
}
