package middlewares

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"LoanPulse/api"
	"LoanPulse/api/auth"
	"LoanPulse/api/constants"
	"LoanPulse/internal/validation"
)

type contextKey string

// SessionContextKey carries the validated *auth.UserSession for handlers.
const SessionContextKey contextKey = "user_session"

// PreValidation rejects requests without a user_id belonging to an active
// session before any handler work happens. The body is restored so multipart
// uploads can still be parsed downstream.
func PreValidation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
			return
		}
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewBuffer(body))

		userID, err := validation.ExtractUserID(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrUserIDRequired)
			return
		}
		r.Body = io.NopCloser(bytes.NewBuffer(body))

		session := validation.ValidateSession(userID)
		if session == nil {
			api.RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext retrieves the validated session placed by PreValidation.
func SessionFromContext(ctx context.Context) *auth.UserSession {
	if s, ok := ctx.Value(SessionContextKey).(*auth.UserSession); ok {
		return s
	}
	return nil
}
