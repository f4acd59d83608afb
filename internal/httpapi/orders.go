package httpapi

import (
	"net/http"

	"superapp-be/internal/kind"
	"superapp-be/internal/order"

	"github.com/go-chi/chi/v5"
)

type statusRequest struct {
	Status string `json:"status"`
}

type ratingRequest struct {
	Rating int `json:"rating"`
}

func (h *Handler) registerOrders(r chi.Router) {
	r.Get("/orders", h.listOrders)
	r.Delete("/orders", h.clearOrders)
	r.Get("/orders/{id}", h.getOrder)
	r.Patch("/orders/{id}/status", h.updateOrderStatus)
	r.Patch("/orders/{id}/rating", h.rateOrder)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	raw := r.URL.Query().Get("kind")
	if raw == "" {
		writeJSON(w, http.StatusOK, s.Orders.List())
		return
	}
	k, err := kind.Parse(raw)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Orders.ListByKind(k))
}

func (h *Handler) clearOrders(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Orders.ClearAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	o, err := s.Orders.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := order.ParseStatus(req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	o, err := s.Orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), st)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) rateOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req ratingRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	o, err := s.Orders.UpdateRating(r.Context(), chi.URLParam(r, "id"), req.Rating)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
