package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/vivass/storefront/pkg/httputil"
	"github.com/vivass/storefront/pkg/logger"

	"github.com/vivass/storefront/internal/service"
)

// SessionCookieName is the cookie carrying the anonymous storefront session ID.
const SessionCookieName = "storefront_session"

// AdminCookieName is the cookie carrying the admin token.
const AdminCookieName = "admin_token"

type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionIDFromContext returns the session ID set by the Session middleware.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// Session reads the storefront session cookie, issuing a fresh UUID cookie
// when the cookie is absent or malformed. The session ID keys the cart and
// is attached to the request context and the request-scoped logger.
func Session(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if c, err := r.Cookie(SessionCookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					sessionID = c.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			ctx = logger.WithSessionID(ctx, sessionID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminGate rejects requests that do not carry a valid admin token, looking
// first at the admin cookie and then at the Authorization bearer header.
// The 401 body carries the login endpoint so the UI can redirect.
func AdminGate(auth service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if c, err := r.Cookie(AdminCookieName); err == nil {
				token = c.Value
			}
			if token == "" {
				if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
					token = strings.TrimPrefix(h, "Bearer ")
				}
			}

			if err := auth.Validate(r.Context(), token); err != nil {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "UNAUTHORIZED",
						Message: "admin authorization required",
						Fields:  map[string]string{"login_url": "/api/v1/auth/login"},
					},
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			if r.ContentLength > 0 {
				ct := r.Header.Get("Content-Type")
				if !strings.HasPrefix(ct, "application/json") {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnsupportedMediaType)
					_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
