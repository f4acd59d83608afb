package middleware

import (
	"crypto/subtle"
	"net/http"

	"superapp-be/internal/utils"
)

// InternalService marks requests whose X-Service-Auth header matches key as
// coming from a trusted service. An empty key trusts nobody.
func InternalService(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Service-Auth")
			if key != "" && subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1 {
				r = r.WithContext(utils.WithInternalRequest(r.Context()))
			}
			next.ServeHTTP(w, r)
		})
	}
}
