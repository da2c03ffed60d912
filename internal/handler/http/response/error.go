package response

import (
	"errors"
	"net/http"

	"github.com/nexhr/worktime-backend-go/internal/domain/auth"
	"github.com/nexhr/worktime-backend-go/internal/domain/punch"
	"github.com/nexhr/worktime-backend-go/internal/domain/user"
	"github.com/nexhr/worktime-backend-go/internal/domain/worktime"
	"github.com/nexhr/worktime-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Punch domain errors
	case errors.Is(err, punch.ErrInvalidKind):
		BadRequest(w, "Punch kind must be check_in or check_out", nil)
	case errors.Is(err, punch.ErrFutureDate):
		BadRequest(w, "Work date must not be in the future", nil)
	case errors.Is(err, punch.ErrPunchNotFound):
		NotFound(w, "Punch not found")

	// Worktime domain errors
	case errors.Is(err, worktime.ErrSummaryNotFound):
		NotFound(w, "Day summary not found")
	case errors.Is(err, worktime.ErrManuallyOverridden):
		Conflict(w, "Day summary is manually overridden")
	case errors.Is(err, worktime.ErrPolicyConfigMissing):
		InternalServerError(w, "No compensation policy is configured")
	case errors.Is(err, worktime.ErrLookupUnavailable):
		ServiceUnavailable(w, "A required lookup is unavailable, try again later")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
