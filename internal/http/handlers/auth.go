package handlers

import (
	"errors"
	"net/http"
	"strings"

	"communityaid/internal/domain"
	"communityaid/internal/middleware"
	"communityaid/internal/resource"
)

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Register creates a regular account.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req resource.Registration
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	user, err := resource.Register(r.Context(), a.Users, req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.Logger.Info().Int64("user_id", user.ID).Msg("user registered")
	a.json(w, http.StatusCreated, a.userView(user.Actor(), *user))
}

// Token exchanges credentials for a bearer token.
func (a *App) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		a.fail(w, r, domain.Invalid("username", "username and password are required"))
		return
	}
	user, err := resource.Authenticate(r.Context(), a.Users, req.Username, req.Password)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	token, err := middleware.SignToken(a.JWTSecret, user.ID, user.IsStaff, a.TokenTTL)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, tokenResponse{Token: token, ExpiresIn: int64(a.TokenTTL.Seconds())})
}

// Me returns the caller's own profile.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.UserIDFromContext(r.Context())
	if id == 0 {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	user, err := a.Users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "account no longer exists")
			return
		}
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, a.userView(user.Actor(), *user))
}
