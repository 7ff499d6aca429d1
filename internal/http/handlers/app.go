package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"communityaid/internal/domain"
	"communityaid/internal/middleware"
	"communityaid/internal/payment"
	"communityaid/internal/resource"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// PaymentInitiator starts a mobile-money donation.
type PaymentInitiator interface {
	Initiate(ctx context.Context, actor domain.Actor, req payment.Request) (*payment.Result, error)
}

// MediaStore keeps uploaded profile photos.
type MediaStore interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
	Remove(key string) error
	URL(key string) string
}

// Pinger reports database reachability for the health probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App carries every dependency the HTTP handlers need.
type App struct {
	Projects      *resource.Service[domain.Project]
	Donations     *resource.Service[domain.Donation]
	Beneficiaries *resource.Service[domain.Beneficiary]
	Volunteers    *resource.Service[domain.Volunteer]
	UserAccounts  *resource.Service[domain.User]

	BeneficiaryApprovals *resource.Approver
	VolunteerApprovals   *resource.Approver

	Users    domain.UserRepository
	Payments PaymentInitiator
	Media    MediaStore
	DB       Pinger
	Logger   zerolog.Logger

	JWTSecret string
	TokenTTL  time.Duration
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}

// fail classifies err with errors.Is/As and writes the matching envelope.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	var uerr *domain.UpstreamError
	switch {
	case errors.As(err, &verr):
		a.json(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid",
			"field":   verr.Field,
			"message": verr.Error(),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "invalid", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "not found")
	case errors.As(err, &uerr):
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("upstream failure")
		a.json(w, http.StatusInternalServerError, map[string]string{
			"error":   "upstream_error",
			"message": "payment gateway unavailable",
			"details": uerr.Details,
		})
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful to write
	default:
		a.Logger.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// decode reads a JSON body into v.
func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return err
		}
		return domain.Invalid("", "invalid JSON payload")
	}
	return nil
}

// actor loads the authenticated caller fresh from the store so staff
// changes apply immediately.
func (a *App) actor(r *http.Request) (domain.Actor, error) {
	id := middleware.UserIDFromContext(r.Context())
	if id == 0 {
		return domain.Anonymous, domain.ErrUnauthorized
	}
	user, err := a.Users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Anonymous, domain.ErrUnauthorized
		}
		return domain.Anonymous, err
	}
	return user.Actor(), nil
}
