package handlers

import (
	"net/http"

	"artvista/internal/catalog"
	"artvista/internal/checkout"
	applog "artvista/internal/log"
	"artvista/models"
)

type cartResponse struct {
	Items []models.Artwork `json:"items"`
	Count int              `json:"count"`
	Total float64          `json:"total"`
}

type addToCartRequest struct {
	ArtworkID int64 `json:"artworkId"`
}

type checkoutResponse struct {
	Receipt checkout.Receipt `json:"receipt"`
	Cart    cartResponse     `json:"cart"`
}

func newCartResponse(r *http.Request) cartResponse {
	c := workspaceFrom(r).Cart
	return cartResponse{Items: c.Items(), Count: c.Len(), Total: c.Total()}
}

// Cart returns the workspace cart.
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, newCartResponse(r))
}

// AddToCart copies an approved artwork into the cart.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	artwork, ok := h.gallery.Catalog().Artwork(req.ArtworkID)
	if !ok || !artwork.Approved() {
		writeError(w, r, catalog.ErrArtworkNotFound)
		return
	}
	if err := workspaceFrom(r).Cart.Add(r.Context(), artwork); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, newCartResponse(r))
}

// RemoveFromCart drops the first cart entry for the artwork id.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, ok := artworkID(w, r)
	if !ok {
		return
	}
	removed, err := workspaceFrom(r).Cart.Remove(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !removed {
		writeJSONError(w, http.StatusNotFound, "artwork is not in your cart")
		return
	}
	writeJSON(w, r, http.StatusOK, newCartResponse(r))
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := workspaceFrom(r).Cart.Clear(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newCartResponse(r))
}

// Checkout pays for the cart through the mock gateway.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)
	receipt, err := ws.Checkout(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	applog.Info(r.Context(), "order placed", "workspace", ws.ID, "amount", receipt.Amount)
	writeJSON(w, r, http.StatusOK, checkoutResponse{Receipt: receipt, Cart: newCartResponse(r)})
}
