package httpapi

import (
	"fmt"
	"net/http"

	"superapp-be/internal/apperr"
	"superapp-be/internal/kind"
	"superapp-be/internal/liked"
	"superapp-be/internal/review"
	"superapp-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) registerLiked(r chi.Router) {
	r.Post("/liked/toggle", h.toggleLiked)
	r.Get("/liked", h.listLiked)
}

func (h *Handler) registerReviews(r chi.Router) {
	r.Get("/reviews", h.listReviews)
	r.Post("/reviews", h.addReview)
	r.Get("/reviews/summary", h.reviewSummary)
}

func (h *Handler) toggleLiked(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var item liked.Item
	if err := decode(r, &item, false); err != nil {
		writeError(w, r, err)
		return
	}
	isLiked, err := s.Liked.Toggle(r.Context(), item)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"liked": isLiked})
}

func (h *Handler) listLiked(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	raw := r.URL.Query().Get("kind")
	if raw == "" {
		writeJSON(w, http.StatusOK, s.Liked.List())
		return
	}
	k, err := kind.Parse(raw)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Liked.ListByKind(k))
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	rating, err := utils.QueryInt(r, "rating", 0)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: rating must be a number", apperr.ErrValidation))
		return
	}
	writeJSON(w, http.StatusOK, s.Reviews.List(review.Filter{
		Rating:    rating,
		WithImage: utils.QueryBool(r, "with_image"),
	}))
}

func (h *Handler) addReview(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var in review.Input
	if err := decode(r, &in, false); err != nil {
		writeError(w, r, err)
		return
	}
	rv, err := s.Reviews.Add(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *Handler) reviewSummary(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Reviews.Summary())
}
