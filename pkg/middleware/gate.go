package middleware

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/pkg/response"
)

// GateHeader is the header carrying the admin secret on gated requests.
const GateHeader = "X-Admin-Password"

// AdminGate guards mutating admin routes. There is no server-side
// session: the client holds its own admit flag and re-sends the secret
// on every request, and authenticate is re-evaluated each time.
func AdminGate(authenticate func(secret string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authenticate(r.Header.Get(GateHeader)) {
				response.Unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
