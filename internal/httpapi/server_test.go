package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"superapp-be/internal/auth"
	"superapp-be/internal/middleware"
	"superapp-be/internal/session"
	"superapp-be/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router *chi.Mux
	tokens *auth.TokenIssuer
	store  *storage.MemoryStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	store := storage.NewMemoryStore()
	router := NewRouter(Deps{
		Registry: session.NewRegistry(store, nil),
		OTP:      auth.NewOTPService(tokens, time.Minute),
		Tokens:   tokens,
	})
	return &testAPI{router: router, tokens: tokens, store: store}
}

func (a *testAPI) token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := a.tokens.Issue(userID, "")
	require.NoError(t, err)
	return tok
}

// do sends body as JSON and decodes the response into out when non-nil.
func (a *testAPI) do(t *testing.T, method, path, token string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	if out != nil && w.Code < 300 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestHealthz(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		api := newTestAPI(t)
		w := api.do(t, http.MethodGet, "/healthz", "", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("Store down", func(t *testing.T) {
		router := NewRouter(Deps{
			Registry: session.NewRegistry(storage.NewMemoryStore(), nil),
			Health:   func(context.Context) error { return errors.New("down") },
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestMetrics(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodGet, "/healthz", "", nil, nil)

	var snap map[string]uint64
	w := api.do(t, http.MethodGet, "/metrics", "", nil, &snap)
	require.Equal(t, http.StatusOK, w.Code)
	assert.GreaterOrEqual(t, snap["http_requests"], uint64(1))
	assert.Contains(t, snap, "orders_placed")

	t.Run("Restricted to internal services when a key is set", func(t *testing.T) {
		router := NewRouter(Deps{
			Registry:    session.NewRegistry(storage.NewMemoryStore(), nil),
			InternalKey: "s3cret",
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.Header.Set("X-Service-Auth", "s3cret")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)

	var otp map[string]string
	w := api.do(t, http.MethodPost, "/api/v1/auth/otp", "", map[string]string{"phone": "9876543210"}, &otp)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, otp["code"], 6)

	var verified map[string]string
	w = api.do(t, http.MethodPost, "/api/v1/auth/otp/verify", "",
		map[string]string{"phone": "9876543210", "code": otp["code"]}, &verified)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, auth.UserIDForPhone("9876543210"), verified["user_id"])

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "access_token", cookies[0].Name)

	w = api.do(t, http.MethodGet, "/api/v1/cart", verified["token"], nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var me map[string]string
	w = api.do(t, http.MethodGet, "/api/v1/me", verified["token"], nil, &me)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, verified["user_id"], me["user_id"])
	assert.Equal(t, "9876543210", me["phone"])

	t.Run("Bad phone", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/auth/otp", "", map[string]string{"phone": "x"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Wrong code", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/auth/otp/verify", "",
			map[string]string{"phone": "9876543210", "code": "nope"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProtectedRoutes(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/orders", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/orders", "garbage", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartAndCheckout(t *testing.T) {
	api := newTestAPI(t)
	tok := api.token(t, "u1")

	w := api.do(t, http.MethodPost, "/api/v1/cart/lines", tok, map[string]any{
		"id": "a1", "kind": "FOOD", "name": "Paneer", "unit_price": "100", "quantity": 2,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	api.do(t, http.MethodPost, "/api/v1/cart/lines", tok, map[string]any{
		"id": "a1", "kind": "FOOD", "name": "Paneer", "unit_price": "100", "quantity": 1,
	}, nil)
	api.do(t, http.MethodPost, "/api/v1/cart/lines", tok, map[string]any{
		"id": "s1", "kind": "SHOPPING", "name": "Tee", "unit_price": 250, "quantity": 1,
	}, nil)

	var c struct {
		Lines  []map[string]any `json:"lines"`
		Total  string           `json:"total"`
		Counts map[string]int   `json:"counts"`
	}
	w = api.do(t, http.MethodGet, "/api/v1/cart", tok, nil, &c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, c.Lines, 2)
	assert.Equal(t, "550", c.Total)
	assert.Equal(t, 3, c.Counts["FOOD"])

	t.Run("Invalid line", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/cart/lines", tok, map[string]any{
			"id": "x", "kind": "FOOD", "unit_price": "1", "quantity": 0,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/lines", bytes.NewBufferString("{"))
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		api.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, errorBody(t, w), "invalid json")
	})

	t.Run("Set quantity of absent line", func(t *testing.T) {
		w := api.do(t, http.MethodPut, "/api/v1/cart/lines/food/missing", tok, map[string]int{"quantity": 2}, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Unknown kind in path", func(t *testing.T) {
		w := api.do(t, http.MethodDelete, "/api/v1/cart/lines/pets/a1", tok, nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	w = api.do(t, http.MethodPut, "/api/v1/cart/lines/food/a1", tok, map[string]int{"quantity": 4}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var placed map[string]any
	w = api.do(t, http.MethodPost, "/api/v1/checkout/food", tok, map[string]any{"payment_method": "upi"}, &placed)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "PENDING", placed["status"])
	assert.Equal(t, "400", placed["total"])
	assert.Equal(t, "upi", placed["payment_method"])

	w = api.do(t, http.MethodGet, "/api/v1/cart", tok, nil, &c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "s1", c.Lines[0]["id"])

	// empty body is accepted for checkout
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/shopping", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodPost, "/api/v1/checkout/food", tok, nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodDelete, "/api/v1/cart", tok, nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestOrders(t *testing.T) {
	api := newTestAPI(t)
	tok := api.token(t, "u1")

	api.do(t, http.MethodPost, "/api/v1/cart/lines", tok, map[string]any{
		"id": "a1", "kind": "FOOD", "name": "Dosa", "unit_price": "100", "quantity": 3,
	}, nil)
	var placed map[string]any
	w := api.do(t, http.MethodPost, "/api/v1/checkout/food", tok, nil, &placed)
	require.Equal(t, http.StatusCreated, w.Code)
	id := placed["id"].(string)

	var o map[string]any
	w = api.do(t, http.MethodPatch, "/api/v1/orders/"+id+"/status", tok, map[string]string{"status": "confirmed"}, &o)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CONFIRMED", o["status"])

	w = api.do(t, http.MethodPatch, "/api/v1/orders/"+id+"/status", tok, map[string]string{"status": "DELIVERED"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, errorBody(t, w), "CONFIRMED -> DELIVERED")

	w = api.do(t, http.MethodPatch, "/api/v1/orders/"+id+"/status", tok, map[string]string{"status": "SHIPPED"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/orders/"+id, tok, nil, &o)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CONFIRMED", o["status"])

	w = api.do(t, http.MethodPatch, "/api/v1/orders/"+id+"/rating", tok, map[string]int{"rating": 5}, &o)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 5, o["rating"])

	w = api.do(t, http.MethodPatch, "/api/v1/orders/"+id+"/rating", tok, map[string]int{"rating": 7}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/orders/missing", tok, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var list []map[string]any
	api.do(t, http.MethodGet, "/api/v1/orders?kind=food", tok, nil, &list)
	assert.Len(t, list, 1)
	api.do(t, http.MethodGet, "/api/v1/orders?kind=shopping", tok, nil, &list)
	assert.Empty(t, list)

	w = api.do(t, http.MethodGet, "/api/v1/orders?kind=pets", tok, nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// another user sees nothing
	api.do(t, http.MethodGet, "/api/v1/orders", api.token(t, "u2"), nil, &list)
	assert.Empty(t, list)

	w = api.do(t, http.MethodDelete, "/api/v1/orders", tok, nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	api.do(t, http.MethodGet, "/api/v1/orders", tok, nil, &list)
	assert.Empty(t, list)
}

func TestLikedAndReviews(t *testing.T) {
	api := newTestAPI(t)
	tok := api.token(t, "u1")

	var res map[string]bool
	item := map[string]string{"id": "p1", "kind": "SHOPPING", "name": "Bag"}
	api.do(t, http.MethodPost, "/api/v1/liked/toggle", tok, item, &res)
	assert.True(t, res["liked"])

	var likedList []map[string]any
	api.do(t, http.MethodGet, "/api/v1/liked?kind=shopping", tok, nil, &likedList)
	assert.Len(t, likedList, 1)

	api.do(t, http.MethodPost, "/api/v1/liked/toggle", tok, item, &res)
	assert.False(t, res["liked"])
	api.do(t, http.MethodGet, "/api/v1/liked", tok, nil, &likedList)
	assert.Empty(t, likedList)

	w := api.do(t, http.MethodPost, "/api/v1/reviews", tok, map[string]any{"author": "A", "rating": 5, "comment": "Nice", "image_ref": "img://1"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	api.do(t, http.MethodPost, "/api/v1/reviews", tok, map[string]any{"author": "B", "rating": 3, "comment": "Ok"}, nil)

	w = api.do(t, http.MethodPost, "/api/v1/reviews", tok, map[string]any{"author": "C", "rating": 0, "comment": "?"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var reviews []map[string]any
	api.do(t, http.MethodGet, "/api/v1/reviews", tok, nil, &reviews)
	require.Len(t, reviews, 2)
	assert.Equal(t, "B", reviews[0]["author"])

	api.do(t, http.MethodGet, "/api/v1/reviews?with_image=true", tok, nil, &reviews)
	assert.Len(t, reviews, 1)
	api.do(t, http.MethodGet, "/api/v1/reviews?rating=3", tok, nil, &reviews)
	assert.Len(t, reviews, 1)

	w = api.do(t, http.MethodGet, "/api/v1/reviews?rating=abc", tok, nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var summary struct {
		Count        int            `json:"count"`
		Average      float64        `json:"average"`
		Distribution map[string]int `json:"distribution"`
	}
	api.do(t, http.MethodGet, "/api/v1/reviews/summary", tok, nil, &summary)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 4.0, summary.Average, 1e-9)
	assert.Equal(t, 1, summary.Distribution["5"])
}

func TestRides(t *testing.T) {
	api := newTestAPI(t)
	tok := api.token(t, "u1")

	var rd map[string]any
	w := api.do(t, http.MethodPost, "/api/v1/rides", tok, map[string]string{"pickup": "Home", "drop": "Work"}, &rd)
	require.Equal(t, http.StatusCreated, w.Code)
	id := rd["id"].(string)

	w = api.do(t, http.MethodPost, "/api/v1/rides", tok, map[string]string{"pickup": "", "drop": "Work"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, st := range []string{"driver-assigned", "arriving", "in_progress"} {
		w = api.do(t, http.MethodPatch, "/api/v1/rides/"+id+"/status", tok, map[string]string{"status": st}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var done struct {
		Ride  map[string]any `json:"ride"`
		Order map[string]any `json:"order"`
	}
	w = api.do(t, http.MethodPatch, "/api/v1/rides/"+id+"/status", tok, map[string]string{"status": "COMPLETED"}, &done)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "COMPLETED", done.Ride["status"])
	require.NotNil(t, done.Order)
	assert.Equal(t, "RIDE", done.Order["kind"])

	var rides struct {
		Current *map[string]any  `json:"current"`
		History []map[string]any `json:"history"`
	}
	api.do(t, http.MethodGet, "/api/v1/rides", tok, nil, &rides)
	assert.Nil(t, rides.Current)
	assert.Len(t, rides.History, 1)

	var orders []map[string]any
	api.do(t, http.MethodGet, "/api/v1/orders?kind=ride", tok, nil, &orders)
	assert.Len(t, orders, 1)
}

func TestRateLimitedOTP(t *testing.T) {
	tokens, _ := auth.NewTokenIssuer("test-secret", time.Hour)
	router := NewRouter(Deps{
		Registry: session.NewRegistry(storage.NewMemoryStore(), nil),
		OTP:      auth.NewOTPService(tokens, time.Minute),
		Tokens:   tokens,
		Limiter:  middleware.NewRateLimiter(),
	})

	last := 0
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/otp", bytes.NewBufferString(`{"phone":"x"}`))
		req.RemoteAddr = "192.0.2.1:5000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
