package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"LoanPulse/api/auth"
)

// ExtractUserID parses the request body once and extracts user_id, restoring
// the body for the downstream handler. Works for JSON, form and multipart
// requests.
func ExtractUserID(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	defer r.Body.Close()

	var reqMap map[string]interface{}
	if err := json.Unmarshal(body, &reqMap); err == nil {
		if userID, ok := reqMap["user_id"].(string); ok && userID != "" {
			r.Body = io.NopCloser(bytes.NewBuffer(body))
			return userID, nil
		}
	}

	r.Body = io.NopCloser(bytes.NewBuffer(body))
	ct := r.Header.Get("Content-Type")
	if strings.Contains(strings.ToLower(ct), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err == nil {
			if userID := r.FormValue("user_id"); userID != "" {
				r.Body = io.NopCloser(bytes.NewBuffer(body))
				return userID, nil
			}
		}
	} else {
		if err := r.ParseForm(); err == nil {
			if userID := r.FormValue("user_id"); userID != "" {
				r.Body = io.NopCloser(bytes.NewBuffer(body))
				return userID, nil
			}
		}
	}

	r.Body = io.NopCloser(bytes.NewBuffer(body))
	return "", fmt.Errorf("user_id not found in request")
}

// ValidateSession checks if the user has an active session (in-memory check,
// no DB). Returns the session object or nil if not found.
func ValidateSession(userID string) *auth.UserSession {
	for _, s := range auth.GetActiveSessions() {
		if s.UserID == userID {
			return s
		}
	}
	return nil
}
