package handlers

import (
	"net/http"

	"artvista/internal/auth"
	applog "artvista/internal/log"
	"artvista/models"
)

type sessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	Loading       bool            `json:"loading"`
	Session       *models.Session `json:"session"`
}

func newSessionResponse(store *auth.Store) sessionResponse {
	resp := sessionResponse{Loading: store.Loading()}
	if session, ok := store.Current(); ok {
		resp.Authenticated = true
		resp.Session = &session
	}
	return resp
}

// Session reports the identity signed in to the workspace.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, newSessionResponse(workspaceFrom(r).Session))
}

// Logout signs the workspace out. The browser keeps its workspace so the cart and theme
// survive.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	if err := ws.Session.Logout(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		applog.Error(r.Context(), "failed to renew session token", "error", err)
	}
	applog.Debug(r.Context(), "workspace signed out", "workspace", ws.ID)
	writeJSON(w, r, http.StatusOK, newSessionResponse(ws.Session))
}

// renewAfterSignIn rotates the cookie token once an identity is established.
func (h *Handler) renewAfterSignIn(r *http.Request) {
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		applog.Error(r.Context(), "failed to renew session token", "error", err)
	}
}
