package api

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/auth"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/store"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (l *loginRequest) messages() map[string]string {
	return map[string]string{
		"email":    "Email and password are required",
		"password": "Email and password are required",
	}
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decode(r, &in); err != nil {
		fail(w, "Login failed", err)
		return
	}

	user, err := a.store.Site.UserByEmail(r.Context(), in.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		serverError(w, "Login failed", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, expires, err := a.tokens.Issue(user.ID, user.Email)
	if err != nil {
		serverError(w, "Error generating token", err)
		return
	}

	auth.SetSessionCookie(w, r, token, expires)
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]any{
			"token":      token,
			"expires_at": expires,
			"user":       user,
		},
		Message: "Logged in",
	})
}

// me returns the account behind the session cookie.
func (a *API) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := a.store.Site.UserByEmail(r.Context(), claims.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if err != nil {
		serverError(w, "Failed to load user", err)
		return
	}
	writeData(w, http.StatusOK, user)
}

func (a *API) logout(w http.ResponseWriter, _ *http.Request) {
	auth.ClearSessionCookie(w)
	writeMessage(w, http.StatusOK, "Logged out")
}
