package handlers

import (
	"net/http"

	"artvista/internal/auth"
	applog "artvista/internal/log"
	"artvista/models"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type legacyLoginRequest struct {
	Role     models.Role `json:"role"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
}

// SignIn authenticates staff or a registered account.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	applog.Debug(r.Context(), "handling sign in", "email", req.Email)

	if err := auth.ValidateSignIn(req.Email, req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	ws := workspaceFrom(r)
	_, err := ws.Session.SignIn(r.Context(), req.Email, req.Password)
	h.metrics.AuthAttempt("signin", err)
	if err != nil {
		applog.Debug(r.Context(), "sign in failed", "email", req.Email, "error", err)
		writeError(w, r, err)
		return
	}
	h.renewAfterSignIn(r)
	writeJSON(w, r, http.StatusOK, newSessionResponse(ws.Session))
}

// LegacyLogin serves the deprecated role login when it is enabled.
func (h *Handler) LegacyLogin(w http.ResponseWriter, r *http.Request) {
	var req legacyLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ws := workspaceFrom(r)
	_, err := ws.Session.Login(r.Context(), req.Role, req.Email, req.Password)
	h.metrics.AuthAttempt("legacy", err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.renewAfterSignIn(r)
	writeJSON(w, r, http.StatusOK, newSessionResponse(ws.Session))
}
