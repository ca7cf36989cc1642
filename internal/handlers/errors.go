package handlers

import (
	"errors"
	"net/http"

	"github.com/BradenHooton/parliament/internal/models"
	pkghttp "github.com/BradenHooton/parliament/pkg/http"
)

// writeServiceError maps service errors onto the JSON error envelope
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		locked   *models.LockedOutError
		invalid  *models.InvalidCredentialsError
		policy   *models.PasswordPolicyError
		field    *models.ValidationError
		notFound *models.NotFoundError
	)

	switch {
	case errors.As(err, &locked):
		pkghttp.WriteLockedOut(w, locked.RetryAfterSeconds)
	case errors.As(err, &invalid):
		pkghttp.WriteInvalidCredentials(w, invalid.AttemptsRemaining)
	case errors.As(err, &policy):
		pkghttp.WritePasswordPolicyViolation(w, policy.Reasons)
	case errors.As(err, &field):
		pkghttp.WriteValidationError(w, field.Field, field.Reason)
	case errors.As(err, &notFound):
		pkghttp.WriteNotFound(w, notFound.Error())
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "Resource not found")
	case errors.Is(err, models.ErrDuplicateAccount):
		pkghttp.WriteConflict(w, "Legislator already has an account or the login name is taken")
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "Resource already exists")
	case errors.Is(err, models.ErrForbiddenOperation):
		pkghttp.WriteForbidden(w, "Operation not permitted on the admin account")
	case errors.Is(err, models.ErrForbidden):
		pkghttp.WriteForbidden(w, "Insufficient permissions")
	case errors.Is(err, models.ErrUnauthorized):
		pkghttp.WriteUnauthorized(w, "Authentication failed")
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, err.Error())
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
