package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	bookingHandler "github.com/filski95/web-app-challets/internal/http/booking"
	customerHandler "github.com/filski95/web-app-challets/internal/http/customer"
	houseHandler "github.com/filski95/web-app-challets/internal/http/house"
	"github.com/filski95/web-app-challets/internal/http/importcsv"
	authmw "github.com/filski95/web-app-challets/internal/http/middleware"
	"github.com/filski95/web-app-challets/internal/http/sweep"
)

func New(
	bookingV1 *bookingHandler.Handler,
	housesV1 *houseHandler.Handler,
	customersV1 *customerHandler.Handler,
	importV1 *importcsv.Handler,
	sweepV1 *sweep.Handler,
	authSecret string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authmw.Authenticator(authSecret))

		r.Route("/reservations", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			bookingV1.Routes(r)
		})

		r.Route("/houses", func(r chi.Router) {
			housesV1.Routes(r)
			bookingV1.AvailabilityRoutes(r)
		})

		r.Route("/customers", customersV1.Routes)

		r.Route("/import", func(r chi.Router) {
			r.Use(authmw.RequireAdmin)
			importV1.Routes(r)
		})

		r.Route("/sweep", func(r chi.Router) {
			r.Use(authmw.RequireAdmin)
			r.Use(middleware.AllowContentType("application/json"))
			sweepV1.Routes(r)
		})
	})

	return router
}
