package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"artvista/internal/apperror"
	"artvista/internal/appearance"
	"artvista/internal/auth"
	"artvista/internal/catalog"
	"artvista/internal/checkout"
	"artvista/internal/gallery"
	applog "artvista/internal/log"
	"artvista/internal/metrics"
	"artvista/internal/payment"
	"artvista/models"
)

const sessionWorkspaceKey = "workspace:id"

const maxBodyBytes = 1 << 20

type contextKey string

const workspaceContextKey contextKey = "workspace"

// Handler serves the gallery API. Its dependencies are injected by the server.
type Handler struct {
	sessions *scs.SessionManager
	gallery  *gallery.Gallery
	metrics  *metrics.Recorder
}

// New builds a Handler.
func New(sessions *scs.SessionManager, g *gallery.Gallery, rec *metrics.Recorder) *Handler {
	return &Handler{sessions: sessions, gallery: g, metrics: rec}
}

// Routes registers the cookie-bound routes on r. The caller is expected to wrap r with
// the session manager's LoadAndSave middleware.
func (h *Handler) Routes(r chi.Router) {
	r.Use(h.WithWorkspace)

	r.Get("/", h.Home)

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", h.Session)
		r.Post("/signup", h.SignUp)
		r.Post("/signin", h.SignIn)
		r.Post("/login", h.LegacyLogin)
		r.Post("/logout", h.Logout)

		r.Get("/artworks", h.ListArtworks)
		r.Get("/artworks/{id}", h.GetArtwork)
		r.With(h.RequireRole(models.RoleArtist, models.RoleCurator, models.RoleAdmin)).
			Post("/artworks", h.SubmitArtwork)
		r.With(h.RequireRole(models.RoleCurator, models.RoleAdmin)).
			Post("/artworks/{id}/approve", h.ApproveArtwork)
		r.Get("/exhibitions", h.ListExhibitions)
		r.With(h.RequireRole(models.RoleCurator, models.RoleAdmin)).
			Post("/exhibitions", h.AddExhibition)

		r.Get("/cart", h.Cart)
		r.Post("/cart", h.AddToCart)
		r.Delete("/cart", h.ClearCart)
		r.Delete("/cart/{id}", h.RemoveFromCart)
		r.Post("/checkout", h.Checkout)

		r.Get("/theme", h.Theme)
		r.Post("/theme/ui", h.SetUITheme)
		r.With(h.RequireRole(models.RoleCurator, models.RoleAdmin)).
			Post("/theme/gallery", h.SetGalleryTheme)
	})
}

// WithWorkspace binds the request to the browser's workspace. Read-only requests from a
// browser without one are served from the shared guest workspace; the first mutating
// request mints a workspace and binds it to the session cookie.
func (h *Handler) WithWorkspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := h.sessions.GetString(r.Context(), sessionWorkspaceKey)
		if id == "" && isReadOnly(r) {
			ctx := context.WithValue(r.Context(), workspaceContextKey, h.gallery.Guest())
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		if id == "" {
			id = gallery.NewWorkspaceID()
			h.sessions.Put(r.Context(), sessionWorkspaceKey, id)
			applog.Debug(r.Context(), "workspace assigned", "workspace", id)
		}

		ws, err := h.gallery.Workspace(r.Context(), id)
		if err != nil {
			applog.Error(r.Context(), "failed to open workspace", "workspace", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to load your workspace")
			return
		}
		ctx := context.WithValue(r.Context(), workspaceContextKey, ws)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects requests whose session role is not one of roles.
func (h *Handler) RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := workspaceFrom(r).Session.Current()
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "please sign in first")
				return
			}
			for _, role := range roles {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			applog.Debug(r.Context(), "role not permitted", "role", session.Role, "path", r.URL.Path)
			writeJSONError(w, http.StatusForbidden, "your role cannot perform this action")
		})
	}
}

func isReadOnly(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions
}

func workspaceFrom(r *http.Request) *gallery.Workspace {
	ws, _ := r.Context().Value(workspaceContextKey).(*gallery.Workspace)
	return ws
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		applog.Debug(r.Context(), "failed to decode request body", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.Error(r.Context(), "failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}

// writeError maps store errors onto HTTP statuses. Anything unrecognised is logged and
// reported as a 500 without leaking details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *apperror.ValidationError
	switch {
	case errors.As(err, &verr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: verr.Message, Field: verr.Field})
		return
	case errors.Is(err, auth.ErrDuplicateStaffEmail), errors.Is(err, auth.ErrDuplicateAccount):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrAccountNotFound),
		errors.Is(err, auth.ErrIncorrectPassword),
		errors.Is(err, auth.ErrInvalidStaffCredentials),
		errors.Is(err, auth.ErrInvalidAdminCredentials):
		writeJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrLegacyLoginDisabled):
		writeJSONError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, catalog.ErrArtworkNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, appearance.ErrInvalidTheme),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, payment.ErrInvalidAmount):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, checkout.ErrPaymentDeclined):
		writeJSONError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		applog.Warn(r.Context(), "request cancelled", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		applog.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "something went wrong, please try again")
	}
}
