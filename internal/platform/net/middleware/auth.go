package middleware

import (
	"net/http"

	pnet "releves/internal/platform/net"
)

// AuthPort is a tiny seam an auth service can implement later
type AuthPort interface {
	// Parse returns the authenticated agent id from the request or an error
	Parse(r *http.Request) (agentID string, err error)
}

// Auth is a no-op until wired. It uses the port when provided
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			aid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithAgent(r.Context(), aid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
