package handlers

import (
	"net/http"

	"github.com/a-h/templ"

	applog "artvista/internal/log"
	"artvista/internal/views/layout"
	"artvista/internal/views/pages"
	"artvista/internal/views/theme"
)

// Home renders the storefront under the workspace's effective theme. HTMX requests get
// the listing without the document shell.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	ws := workspaceFrom(r)
	session, signedIn := ws.Session.Current()
	term := r.URL.Query().Get("q")

	content := pages.Storefront(pages.StorefrontData{
		Session:     session,
		SignedIn:    signedIn,
		Search:      term,
		Artworks:    h.gallery.Catalog().Search(term),
		Exhibitions: h.gallery.Catalog().Exhibitions(),
		CartCount:   ws.Cart.Len(),
		CartTotal:   ws.Cart.Total(),
	})

	var component templ.Component
	if isHTMX(r) {
		applog.Debug(r.Context(), "rendering HTMX storefront partial")
		component = content
	} else {
		component = layout.Layout("ArtVista", theme.Resolve(ws.AppliedTheme()), content)
	}
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render storefront", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}
