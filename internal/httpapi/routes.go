package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pronoleague/prono-backend/internal/chat"
	"github.com/pronoleague/prono-backend/internal/store"
	"github.com/pronoleague/prono-backend/internal/ws"
)

// SetupRoutes builds the router *with* the store and chat hub injected.
func SetupRoutes(logger *zap.Logger, st *store.Store, ch *chat.Hub, contactOpts chat.Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	// Public routes
	r.Post("/register", Register(st))
	r.Post("/login", Login(st))
	r.Get("/healthz", Healthz)
	r.Get("/matches", ListMatches(st))
	r.Get("/standings", Standings(st))
	r.Get("/rules", ListRules(st))
	r.Get("/info", ListInfos(st))
	r.Get("/ads", ListAds(st))
	r.Get("/ws", ws.Handler(ch, st, contactOpts))

	// Signed-in users
	r.Group(func(r chi.Router) {
		r.Use(requireUser(st))
		r.Post("/predictions", SubmitPredictions(st))
		r.Get("/predictions", MyPredictions(st))
	})

	// Admin surface
	r.Route("/admin", func(r chi.Router) {
		r.Use(requireUser(st))
		r.Use(requireAdmin)

		r.Get("/users", ListUsers(st))
		r.Get("/users/{userID}/predictions", UserPredictions(st))

		r.Post("/matches", CreateMatch(st))
		r.Put("/matches/{matchID}", UpdateMatch(st))
		r.Delete("/matches/{matchID}", DeleteMatch(st))
		r.Post("/matches/{matchID}/result", RecordResult(st))

		r.Post("/rules", SaveRule(st))
		r.Put("/rules/{id}", SaveRule(st))
		r.Delete("/rules/{id}", DeleteRule(st))

		r.Post("/info", SaveInfo(st))
		r.Put("/info/{id}", SaveInfo(st))
		r.Delete("/info/{id}", DeleteInfo(st))

		r.Post("/ads", SaveAd(st))
		r.Put("/ads/{id}", SaveAd(st))
		r.Delete("/ads/{id}", DeleteAd(st))

		r.Delete("/forum/messages/{id}", DeleteForumMessage(ch))
		r.Post("/contact/{userID}/messages", ReplyToContact(ch, contactOpts))
	})

	return r
}
