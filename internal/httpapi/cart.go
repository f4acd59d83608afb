package httpapi

import (
	"net/http"

	"superapp-be/internal/cart"
	"superapp-be/internal/kind"
	"superapp-be/internal/order"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type cartResponse struct {
	Lines  []cart.Line       `json:"lines"`
	Total  decimal.Decimal   `json:"total"`
	Counts map[kind.Kind]int `json:"counts"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) registerCart(r chi.Router) {
	r.Get("/cart", h.getCart)
	r.Delete("/cart", h.clearCart)
	r.Post("/cart/lines", h.addLine)
	r.Put("/cart/lines/{kind}/{id}", h.setQuantity)
	r.Delete("/cart/lines/{kind}/{id}", h.removeLine)
	r.Post("/checkout/{kind}", h.checkout)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{
		Lines: s.Cart.Snapshot(),
		Total: s.Cart.Total(),
		Counts: map[kind.Kind]int{
			kind.Food:     s.Cart.CountByKind(kind.Food),
			kind.Shopping: s.Cart.CountByKind(kind.Shopping),
		},
	})
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Cart.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addLine(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var line cart.Line
	if err := decode(r, &line, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Cart.AddLine(r.Context(), line); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.Cart.Snapshot())
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	k, err := kind.Parse(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req quantityRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Cart.SetQuantity(r.Context(), chi.URLParam(r, "id"), k, req.Quantity); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Cart.Snapshot())
}

func (h *Handler) removeLine(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	k, err := kind.Parse(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.Cart.RemoveLine(r.Context(), chi.URLParam(r, "id"), k)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	k, err := kind.Parse(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	var meta order.Meta
	if err := decode(r, &meta, true); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := s.Checkout(r.Context(), k, &meta)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}
