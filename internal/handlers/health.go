package handlers

import (
	"net/http"
	"time"

	applog "artvista/internal/log"
)

type healthResponse struct {
	Status      string    `json:"status"`
	Time        time.Time `json:"time"`
	Artworks    int       `json:"artworks"`
	Pending     int       `json:"pending"`
	Exhibitions int       `json:"exhibitions"`
}

// Health reports readiness along with the size of the loaded catalogue.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)
	catalog := h.gallery.Catalog()
	writeJSON(w, r, http.StatusOK, healthResponse{
		Status:      "ok",
		Time:        time.Now().UTC(),
		Artworks:    len(catalog.Artworks()),
		Pending:     len(catalog.Pending()),
		Exhibitions: len(catalog.Exhibitions()),
	})
}
