package httpapi

import (
	"net/http"

	"superapp-be/internal/order"
	"superapp-be/internal/ride"

	"github.com/go-chi/chi/v5"
)

type bookRideRequest struct {
	Pickup string `json:"pickup"`
	Drop   string `json:"drop"`
}

type ridesResponse struct {
	Current *ride.Ride  `json:"current"`
	History []ride.Ride `json:"history"`
}

type rideStatusResponse struct {
	Ride  *ride.Ride   `json:"ride"`
	Order *order.Order `json:"order,omitempty"`
}

func (h *Handler) registerRides(r chi.Router) {
	r.Post("/rides", h.bookRide)
	r.Get("/rides", h.listRides)
	r.Patch("/rides/{id}/status", h.updateRideStatus)
}

func (h *Handler) bookRide(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req bookRideRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	rd, err := s.Rides.Book(r.Context(), req.Pickup, req.Drop)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rd)
}

func (h *Handler) listRides(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	cur, _ := s.Rides.Current()
	writeJSON(w, http.StatusOK, ridesResponse{Current: cur, History: s.Rides.History()})
}

func (h *Handler) updateRideStatus(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := ride.ParseStatus(req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rd, o, err := s.UpdateRideStatus(r.Context(), chi.URLParam(r, "id"), st)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rideStatusResponse{Ride: rd, Order: o})
}
