package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pixdoacao/internal/http/handlers"
	"pixdoacao/internal/infra"
	mw "pixdoacao/internal/middleware"
)

type Options struct {
	Logger         infra.Logger
	AllowedOrigins []string
	DefaultLocale  string
	CountryLookup  mw.CountryLookup
	// RateLimitPerMin caps payment-code requests per client IP. Zero disables the limit.
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		mw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		mw.CORS(opts.AllowedOrigins),
		mw.I18N(opts.DefaultLocale, opts.CountryLookup),
		mw.Logger(opts.Logger),
	)

	// Health
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/campaign", app.CampaignSummary)

	// Payment codes
	r.Group(func(r chi.Router) {
		if opts.RateLimitPerMin > 0 {
			r.Use(mw.RateLimit(opts.RateLimitPerMin, time.Minute))
		}
		r.Post("/generate-pix", app.GeneratePix)
		r.Post("/sandbox/create-transaction", app.SandboxCreateTransaction)
	})

	return r
}
