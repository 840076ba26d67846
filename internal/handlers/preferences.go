package handlers

import (
	"net/http"

	applog "artvista/internal/log"
	"artvista/internal/views/theme"
)

type themeResponse struct {
	Effective    string         `json:"effective"`
	UITheme      string         `json:"uiTheme"`
	GalleryTheme *string        `json:"galleryTheme"`
	UIOptions    []theme.Option `json:"uiOptions"`
	Gallery      []theme.Option `json:"galleryOptions"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

func newThemeResponse(r *http.Request) themeResponse {
	a := workspaceFrom(r).Appearance
	resp := themeResponse{
		Effective: a.Effective(),
		UITheme:   a.UITheme(),
		UIOptions: theme.UIOptions(),
		Gallery:   theme.GalleryOptions(),
	}
	if gallery, ok := a.GalleryTheme(); ok {
		resp.GalleryTheme = &gallery
	}
	return resp
}

// Theme reports the workspace theme selection.
func (h *Handler) Theme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, newThemeResponse(r))
}

// SetUITheme switches the visitor theme and drops any gallery override.
func (h *Handler) SetUITheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := workspaceFrom(r).Appearance.ToggleTheme(r.Context(), req.Theme); err != nil {
		applog.Debug(r.Context(), "received invalid theme selection", "value", req.Theme)
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newThemeResponse(r))
}

// SetGalleryTheme toggles a curator gallery theme.
func (h *Handler) SetGalleryTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := workspaceFrom(r).Appearance.SetGalleryTheme(r.Context(), req.Theme); err != nil {
		applog.Debug(r.Context(), "received invalid gallery theme", "value", req.Theme)
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newThemeResponse(r))
}
