package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/till/internal/http/auth"
	"github.com/MrJamesThe3rd/till/internal/http/cart"
	"github.com/MrJamesThe3rd/till/internal/http/catalog"
	"github.com/MrJamesThe3rd/till/internal/http/checkout"
	"github.com/MrJamesThe3rd/till/internal/http/scan"
)

type Options struct {
	CORSOrigins []string
	AuthSecret  []byte
}

func New(
	catalogV1 *catalog.Handler,
	cartV1 *cart.Handler,
	scanV1 *scan.Handler,
	checkoutV1 *checkout.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", catalogV1.Routes)

		r.Group(func(r chi.Router) {
			r.Use(writesOnly(auth.Middleware(opts.AuthSecret)))

			r.Route("/cart", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				cartV1.Routes(r)
			})

			r.Route("/scans", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				scanV1.Routes(r)
			})

			checkoutV1.Routes(r)
		})
	})

	return router
}

// writesOnly applies mw to requests that change register state.
func writesOnly(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		guarded := mw(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				guarded.ServeHTTP(w, r)
			}
		})
	}
}
