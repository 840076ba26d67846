package handlers

import (
	"net/http"

	"artvista/internal/auth"
	applog "artvista/internal/log"
)

type signUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
}

// SignUp registers a visitor account and signs the workspace in.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	applog.Debug(r.Context(), "handling sign up", "email", req.Email)

	if err := auth.ValidateSignUp(req.Email, req.Password, req.ConfirmPassword); err != nil {
		writeError(w, r, err)
		return
	}

	ws := workspaceFrom(r)
	_, err := ws.Session.SignUp(r.Context(), req.Email, req.Password, req.Name)
	h.metrics.AuthAttempt("signup", err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.renewAfterSignIn(r)
	writeJSON(w, r, http.StatusCreated, newSessionResponse(ws.Session))
}
