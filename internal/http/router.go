package http

import (
	"log/slog"
	"net/http"

	"thisday/internal/auth"
	"thisday/internal/calendar"
	"thisday/internal/config"
	"thisday/internal/entry"
	"thisday/internal/http/handler"
	mw "thisday/internal/http/middleware"
	"thisday/internal/media"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, cal calendar.Calendar, verifier *auth.Verifier, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	repo := &entry.PostgresRepository{DB: db}
	immich := media.NewImmichClient(cfg.ImmichBaseURL, cfg.ImmichAPIKey)

	readSvc := entry.NewReadService(repo, cal, log)
	writeSvc := entry.NewService(repo, immich, cal, log)

	readH := &handler.EntryReadHandler{Svc: readSvc}
	writeH := &handler.EntryHandler{Svc: writeSvc}
	mediaH := &handler.MediaHandler{Media: immich}
	authH := &handler.AuthHandler{Users: &auth.UserSync{DB: db, Log: log}}
	meH := &handler.MeHandler{}

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth(verifier))

		r.Get("/login", authH.Login)
		r.Get("/me", meH.Me)

		r.Route("/entries", func(r chi.Router) {
			r.Post("/", writeH.Create)
			r.Post("/backfill", writeH.Backfill)
			r.Put("/{entryID}", writeH.Update)
			r.Delete("/{entryID}", writeH.Delete)

			r.Get("/day", readH.Day)
			r.Get("/same-day/previous-months", readH.PreviousMonths)
			r.Get("/same-day/previous-years", readH.PreviousYears)
			r.Get("/today/summary", readH.TodaySummary)
			r.Get("/calendar", readH.Calendar)
		})

		r.Get("/media/{assetID}", mediaH.Get)
	})

	return r
}
