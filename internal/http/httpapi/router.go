package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"communityaid/internal/http/handlers"
	"communityaid/internal/infra"
	"communityaid/internal/middleware"
)

// Options carries the router's cross-cutting settings.
type Options struct {
	JWTSecret       string
	CORSOrigins     []string
	RateLimitPerMin int
	Metrics         *infra.Metrics
	Media           http.Handler
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		chimw.StripSlashes,
		middleware.Logger(app.Logger, opts.Metrics),
		middleware.CORS(opts.CORSOrigins),
		middleware.RateLimit(opts.RateLimitPerMin, time.Minute),
	)

	// Public
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	if opts.Media != nil {
		r.Handle("/media/*", http.StripPrefix("/media", opts.Media))
	}
	r.Post("/register", app.Register)
	r.Post("/token", app.Token)

	// Authenticated
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(opts.JWTSecret))

		r.Get("/me", app.Me)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", app.ListProjects)
			r.Post("/", app.CreateProject)
			r.Get("/{id}", app.GetProject)
			r.Put("/{id}", app.UpdateProject)
			r.Patch("/{id}", app.UpdateProject)
			r.Delete("/{id}", app.DeleteProject)
		})
		r.Route("/donations", func(r chi.Router) {
			r.Get("/", app.ListDonations)
			r.Post("/", app.CreateDonation)
			r.Get("/{id}", app.GetDonation)
			r.Put("/{id}", app.UpdateDonation)
			r.Patch("/{id}", app.UpdateDonation)
			r.Delete("/{id}", app.DeleteDonation)
		})
		r.Route("/beneficiaries", func(r chi.Router) {
			r.Get("/", app.ListBeneficiaries)
			r.Post("/", app.CreateBeneficiary)
			r.Post("/approve", app.ApproveBeneficiaries)
			r.Get("/{id}", app.GetBeneficiary)
			r.Put("/{id}", app.UpdateBeneficiary)
			r.Patch("/{id}", app.UpdateBeneficiary)
			r.Delete("/{id}", app.DeleteBeneficiary)
		})
		r.Route("/volunteers", func(r chi.Router) {
			r.Get("/", app.ListVolunteers)
			r.Post("/", app.CreateVolunteer)
			r.Post("/approve", app.ApproveVolunteers)
			r.Post("/reject", app.RejectVolunteers)
			r.Get("/{id}", app.GetVolunteer)
			r.Put("/{id}", app.UpdateVolunteer)
			r.Patch("/{id}", app.UpdateVolunteer)
			r.Delete("/{id}", app.DeleteVolunteer)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/", app.ListUsers)
			r.Post("/", app.CreateUser)
			r.Get("/{id}", app.GetUser)
			r.Put("/{id}", app.UpdateUser)
			r.Patch("/{id}", app.UpdateUser)
			r.Delete("/{id}", app.DeleteUser)
			r.Put("/{id}/photo", app.UploadPhoto)
		})
		r.Post("/donate/mpesa", app.DonateMpesa)
	})

	return otelhttp.NewHandler(r, "communityaid")
}
