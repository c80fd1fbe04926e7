package httpserver

import (
	"net/http"
	"time"

	"foodshare-go/internal/config"
	"foodshare-go/internal/transport/httpserver/handler"
	authmw "foodshare-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, tokens authmw.TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/users/register", handlers.Register)
		r.Post("/users/login", handlers.Login)

		// Public dashboards and homepage content.
		r.Get("/stats", handlers.StatsOverview)
		r.Get("/donations/stats", handlers.StatsBreakdown)
		r.Get("/contributors", handlers.StatsContributors)
		r.Get("/carousel", handlers.ListCarouselImages)

		auth := authmw.NewTokenAuth(tokens)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/admin/pending-users", handlers.ListPendingUsers)
			r.Patch("/admin/users/{id}/status", handlers.SetUserStatus)

			r.Get("/donations/available", handlers.ListAvailableDonations)
			r.Get("/donations/donor", handlers.ListDonorDonations)
			r.Get("/donations/charity", handlers.ListCharityDonations)
			r.Get("/donations/claimed", handlers.ListClaimedDonations)
			r.Post("/donations", handlers.CreateDonation)
			r.Put("/donations/{id}", handlers.UpdateDonation)
			r.Delete("/donations/{id}", handlers.DeleteDonation)
			r.Patch("/donations/{id}/claim", handlers.ClaimDonation)
			r.Patch("/donations/{id}/status", handlers.AdvanceDonationStatus)
			r.Get("/donations/{id}/eta", handlers.DonationETA)

			r.Post("/carousel", handlers.AddCarouselImage)
			r.Delete("/carousel/{id}", handlers.DeleteCarouselImage)
		})
	})

	return r
}
