package http

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/stockpile/backend/internal/auth"
	"github.com/stockpile/backend/internal/avatar"
	accountHandler "github.com/stockpile/backend/internal/http/account"
	authHandler "github.com/stockpile/backend/internal/http/auth"
	categoryHandler "github.com/stockpile/backend/internal/http/category"
	customerHandler "github.com/stockpile/backend/internal/http/customer"
	ledgerHandler "github.com/stockpile/backend/internal/http/ledger"
	productHandler "github.com/stockpile/backend/internal/http/product"
	statsHandler "github.com/stockpile/backend/internal/http/stats"
	supplierHandler "github.com/stockpile/backend/internal/http/supplier"
)

func New(
	tokens *auth.Service,
	avatars *avatar.Store,
	requestsPerMinute int,
	authV1 *authHandler.Handler,
	accountsV1 *accountHandler.Handler,
	categoriesV1 *categoryHandler.Handler,
	customersV1 *customerHandler.Handler,
	suppliersV1 *supplierHandler.Handler,
	productsV1 *productHandler.Handler,
	transactionsV1 *ledgerHandler.Handler,
	statsV1 *statsHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	router.Use(httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
	))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Get("/avatars/{file}", serveAvatar(avatars))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authV1.PublicRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(Authenticator(tokens))
				authV1.Routes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(Authenticator(tokens))

			r.Route("/accounts", func(r chi.Router) {
				r.Use(AdminOnly)
				accountsV1.Routes(r)
			})

			// Reads are open to both roles; writes sit behind the admin
			// gate.
			r.Route("/categories", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				categoriesV1.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(AdminOnly)
					categoriesV1.AdminRoutes(r)
				})
			})

			r.Route("/customers", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				customersV1.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(AdminOnly)
					customersV1.AdminRoutes(r)
				})
			})

			r.Route("/suppliers", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				suppliersV1.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(AdminOnly)
					suppliersV1.AdminRoutes(r)
				})
			})

			r.Route("/products", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				productsV1.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(AdminOnly)
					productsV1.AdminRoutes(r)
				})
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				transactionsV1.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(AdminOnly)
					transactionsV1.AdminRoutes(r)
				})
			})

			r.Route("/stats", statsV1.Routes)
		})
	})

	return router
}

// rateLimitKey buckets authenticated clients by their token and anonymous
// ones by IP.
func rateLimitKey(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		return header, nil
	}

	return httprate.KeyByIP(r)
}

func serveAvatar(avatars *avatar.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "file")

		f, err := avatars.Open(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}

		_, _ = io.Copy(w, f)
	}
}
