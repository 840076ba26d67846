package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"artvista/internal/catalog"
	applog "artvista/internal/log"
	"artvista/models"
)

type artworkRequest struct {
	Title   string  `json:"title"`
	Artist  string  `json:"artist"`
	Price   float64 `json:"price"`
	History string  `json:"history"`
	Medium  string  `json:"medium"`
	Year    string  `json:"year"`
	Image   string  `json:"image"`
}

type exhibitionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Curator     string `json:"curator"`
}

// ListArtworks returns the catalogue. Without filters only approved artworks are listed;
// status=pending and status=all are limited to curators and admins. Artists asking for
// their own name also see their pending submissions.
func (h *Handler) ListArtworks(w http.ResponseWriter, r *http.Request) {
	store := h.gallery.Catalog()
	query := r.URL.Query()
	status := strings.ToLower(strings.TrimSpace(query.Get("status")))
	artist := strings.TrimSpace(query.Get("artist"))
	term := query.Get("q")

	session, signedIn := workspaceFrom(r).Session.Current()

	var artworks []models.Artwork
	switch status {
	case "":
		if artist != "" && signedIn && session.Role == models.RoleArtist && strings.EqualFold(session.Name, artist) {
			writeJSON(w, r, http.StatusOK, store.ByArtist(artist))
			return
		}
		artworks = store.Search(term)
	case string(models.StatusApproved):
		artworks = store.Search(term)
	case string(models.StatusPending), "all":
		if !signedIn || !session.Role.CanCurate() {
			writeJSONError(w, http.StatusForbidden, "your role cannot perform this action")
			return
		}
		if status == "all" {
			artworks = store.Artworks()
		} else {
			artworks = store.Pending()
		}
	default:
		writeJSONError(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	if artist != "" {
		artworks = filterByArtist(artworks, artist)
	}
	applog.Debug(r.Context(), "listing artworks", "status", status, "artist", artist, "results", len(artworks))
	writeJSON(w, r, http.StatusOK, artworks)
}

// GetArtwork returns one artwork by id.
func (h *Handler) GetArtwork(w http.ResponseWriter, r *http.Request) {
	id, ok := artworkID(w, r)
	if !ok {
		return
	}
	artwork, found := h.gallery.Catalog().Artwork(id)
	if !found {
		writeError(w, r, catalog.ErrArtworkNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, artwork)
}

// SubmitArtwork adds an artwork on behalf of the signed-in identity.
func (h *Handler) SubmitArtwork(w http.ResponseWriter, r *http.Request) {
	var req artworkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, _ := workspaceFrom(r).Session.Current()

	artwork, err := h.gallery.Catalog().Submit(r.Context(), session, models.Artwork{
		Title:   req.Title,
		Artist:  req.Artist,
		Price:   req.Price,
		History: req.History,
		Medium:  req.Medium,
		Year:    req.Year,
		Image:   req.Image,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, artwork)
}

// ApproveArtwork publishes a pending artwork.
func (h *Handler) ApproveArtwork(w http.ResponseWriter, r *http.Request) {
	id, ok := artworkID(w, r)
	if !ok {
		return
	}
	artwork, err := h.gallery.Catalog().ApproveArtwork(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, artwork)
}

// ListExhibitions returns every exhibition.
func (h *Handler) ListExhibitions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.gallery.Catalog().Exhibitions())
}

// AddExhibition creates an exhibition.
func (h *Handler) AddExhibition(w http.ResponseWriter, r *http.Request) {
	var req exhibitionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	exhibition, err := h.gallery.Catalog().AddExhibition(r.Context(), models.Exhibition{
		Title:       req.Title,
		Description: req.Description,
		Curator:     req.Curator,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, exhibition)
}

func artworkID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid artwork id")
		return 0, false
	}
	return id, true
}

func filterByArtist(artworks []models.Artwork, artist string) []models.Artwork {
	out := make([]models.Artwork, 0, len(artworks))
	for _, a := range artworks {
		if strings.EqualFold(a.Artist, artist) {
			out = append(out, a)
		}
	}
	return out
}
