package auth

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// CookieName holds the session token.
const CookieName = "auth_token"

type contextKey struct{}

// ClaimsFromContext returns the claims the guard attached to the request.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}

// Authenticate attaches the session claims to requests carrying a valid
// cookie. Requests without one pass through unchanged.
func Authenticate(tokens *Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := sessionClaims(tokens, r); ok {
				r = r.WithContext(context.WithValue(r.Context(), contextKey{}, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guard redirects requests under prefix to loginPath unless they carry a
// valid session cookie. Other paths pass through untouched.
func Guard(tokens *Tokens, prefix, loginPath string) func(http.Handler) http.Handler {
	prefix = strings.TrimRight(prefix, "/")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !underPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}

			claims, ok := sessionClaims(tokens, r)
			if !ok {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, claims)))
		})
	}
}

func sessionClaims(tokens *Tokens, r *http.Request) (*Claims, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	claims, err := tokens.Validate(cookie.Value)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// SetSessionCookie stores token in an HttpOnly cookie.
func SetSessionCookie(w http.ResponseWriter, r *http.Request, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
