package httpd

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/eshoplabs/auth"
)

// errorBody is the uniform error envelope every endpoint returns on failure.
type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFor classifies engine errors. Every throttle and lockout outcome maps
// to 429; expiry and forgery both land on 401 but keep distinct messages.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrAccountExists),
		errors.Is(err, auth.ErrSamePassword),
		errors.Is(err, auth.ErrResetUserNotFound),
		errors.Is(err, auth.ErrOtpInvalid),
		errors.Is(err, auth.ErrOtpIncorrect):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUnauthorized),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrResetNotAuthorized):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrOtpLocked),
		errors.Is(err, auth.ErrOtpTooManyRequests),
		errors.Is(err, auth.ErrOtpCooldown):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError is the single error boundary. Known kinds keep their message;
// anything else is logged in full server-side and reduced to a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("unhandled request error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		message = "Something went wrong, please try again later"
	}
	writeJSON(w, status, errorBody{Status: status, Message: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Status:  http.StatusBadRequest,
			Message: "invalid request body",
		})
		return false
	}
	return true
}
