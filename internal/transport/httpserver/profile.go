package httpserver

import (
	"net/http"
	"strings"

	"insuredevents/internal/ports"
)

const (
	HeaderUserID     = "X-User-Id"
	HeaderUserLogin  = "X-User-Login"
	HeaderUserName   = "X-User-Name"
	HeaderRealUserID = "X-Real-User-Id"
	HeaderRealLogin  = "X-Real-User-Login"
)

// ProfileFromHeaders stands in for the host application when the module runs on its own:
// it puts the caller profile from the gateway headers into the request context.
func ProfileFromHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		profile := ports.Profile{
			UserID: userID,
			Login:  strings.TrimSpace(r.Header.Get(HeaderUserLogin)),
			Name:   strings.TrimSpace(r.Header.Get(HeaderUserName)),
		}
		if realID := strings.TrimSpace(r.Header.Get(HeaderRealUserID)); realID != "" && realID != userID {
			profile.Real = &ports.Profile{
				UserID: realID,
				Login:  strings.TrimSpace(r.Header.Get(HeaderRealLogin)),
			}
		}
		next.ServeHTTP(w, r.WithContext(ports.WithProfile(r.Context(), profile)))
	})
}
