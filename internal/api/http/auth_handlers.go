package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

func contextWithViewer(ctx context.Context, viewerID string) context.Context {
	return context.WithValue(ctx, viewerIDKey, viewerID)
}

func viewerFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(viewerIDKey).(string); ok {
		return id
	}
	return ""
}

// HandleDevToken mints an access token for a given user id. Development
// only; the real identity provider owns token issuance.
func (a *API) HandleDevToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	token, err := a.tokens.MintDevToken(body.UserID, body.Email, 24*time.Hour)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (a *API) HandleWhoAmI(w http.ResponseWriter, r *http.Request) {
	viewerID := viewerFromContext(r.Context())
	if viewerID == "" {
		writeError(w, http.StatusUnauthorized, "no viewer in context")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"user_id": viewerID})
}
