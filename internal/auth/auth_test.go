package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueValidate(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	token, expiry, err := tokens.Issue(1, "admin@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "1", claims.Subject)
}

func TestTokens_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokens("one", time.Hour).Issue(1, "a@b.c")
	require.NoError(t, err)

	_, err = NewTokens("two", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_RejectsExpired(t *testing.T) {
	tokens := NewTokens("test-secret", time.Minute)
	tokens.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := tokens.Issue(1, "a@b.c")
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_RejectsOtherAlgorithms(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokens("test-secret", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokens_RandomSecret(t *testing.T) {
	a := NewTokens("", time.Hour)
	b := NewTokens("", time.Hour)

	token, _, err := a.Issue(1, "a@b.c")
	require.NoError(t, err)
	_, err = a.Validate(token)
	require.NoError(t, err)
	_, err = b.Validate(token)
	assert.Error(t, err)
}

func TestGuard(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	valid, _, err := tokens.Issue(1, "a@b.c")
	require.NoError(t, err)

	var seen *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := Guard(tokens, "/pages/dashboard", "/login")(next)

	tests := []struct {
		name     string
		path     string
		cookie   string
		wantCode int
	}{
		{"outside prefix", "/api/posts", "", http.StatusOK},
		{"similar prefix", "/pages/dashboardx", "", http.StatusOK},
		{"no cookie", "/pages/dashboard", "", http.StatusFound},
		{"nested no cookie", "/pages/dashboard/posts", "", http.StatusFound},
		{"garbage cookie", "/pages/dashboard", "abc", http.StatusFound},
		{"valid cookie", "/pages/dashboard/posts", valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusFound {
				assert.Equal(t, "/login", rec.Header().Get("Location"))
			}
		})
	}

	require.NotNil(t, seen)
	assert.Equal(t, uint(1), seen.UserID)
}

func TestSessionCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), "tok", time.Now().Add(time.Hour))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestAuthenticate(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	valid, _, err := tokens.Issue(7, "a@b.c")
	require.NoError(t, err)

	tests := []struct {
		name   string
		cookie string
		want   bool
	}{
		{"no cookie", "", false},
		{"garbage cookie", "abc", false},
		{"valid cookie", valid, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				claims *Claims
				ok     bool
			)
			h := Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims, ok = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, uint(7), claims.UserID)
			}
		})
	}
}
