package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAccessToken(t *testing.T) {
	t.Run("Cookie Preferred", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie_token"})
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "cookie_token", ExtractAccessToken(req))
	})

	t.Run("Header Fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("Empty Cookie Falls Back to Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: ""})
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("No Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, ExtractAccessToken(req))
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic user:pass")
		assert.Empty(t, ExtractAccessToken(req))
	})
}

func TestTokenIssuer(t *testing.T) {
	t.Run("Missing secret", func(t *testing.T) {
		_, err := NewTokenIssuer("", time.Hour)
		assert.ErrorIs(t, err, ErrMissingSecret)
	})

	t.Run("Issue and parse", func(t *testing.T) {
		ti, err := NewTokenIssuer("test-secret", time.Hour)
		require.NoError(t, err)

		token, err := ti.Issue("user-1", "+919876543210")
		require.NoError(t, err)

		claims, err := ti.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "+919876543210", claims.Phone)
		assert.Equal(t, "user-1", claims.Subject)
	})

	t.Run("Expired", func(t *testing.T) {
		ti, _ := NewTokenIssuer("test-secret", time.Minute)
		token, err := ti.Issue("user-1", "")
		require.NoError(t, err)

		ti.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err = ti.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		a, _ := NewTokenIssuer("secret-a", time.Hour)
		b, _ := NewTokenIssuer("secret-b", time.Hour)
		token, _ := a.Issue("user-1", "")

		_, err := b.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong signing method", func(t *testing.T) {
		ti, _ := NewTokenIssuer("test-secret", time.Hour)
		token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"})
		s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ti.Parse(s)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("Missing user id", func(t *testing.T) {
		ti, _ := NewTokenIssuer("test-secret", time.Hour)
		token, _ := ti.Issue("", "")

		_, err := ti.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
