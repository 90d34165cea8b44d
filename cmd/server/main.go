package main

import (
	"database/sql"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"patient-intake/internal/config"
	"patient-intake/internal/guide"
	"patient-intake/internal/insurance"
	"patient-intake/internal/intake"
	"patient-intake/internal/platform/narrative"
	"patient-intake/internal/platform/notify"
	"patient-intake/internal/platform/ocr"
	"patient-intake/internal/scheduling"
	"patient-intake/internal/triage"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// 1. Infrastructure
	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			break
		}
		logger.Info().Int("attempt", i+1).Msg("waiting for database")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to database")
	}
	logger.Info().Msg("connected to database")

	m, err := migrate.New("file://migrations", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("migration init failed")
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Fatal().Err(err).Msg("migration up failed")
	}
	logger.Info().Msg("migrations applied")

	// 2. Clients
	ocrClient := ocr.NewSpaceClient(cfg.OCRAPIKey, cfg.OCRBaseURL, cfg.OCRMinInterval)
	narrativeClient := narrative.NewClient(cfg.NarrativeAPIKey, cfg.NarrativeModel)
	notifyClient := notify.NewClient(cfg.NotifyBaseURL, cfg.NotifyMinInterval)

	// 3. Services
	repo := intake.NewRepository(db)
	svc := intake.NewService(intake.Deps{
		Repo:      repo,
		OCR:       ocrClient,
		Narrative: narrativeClient,
		Notify:    notifyClient,
		Engine:    triage.NewEngine(cfg.RiskFactorEscalation),
		Allocator: scheduling.NewAllocator(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now),
		Verifier:  insurance.NewVerifier(time.Now),
		Resolver:  guide.NewResolver(cfg.NarrativeMinLength),
		Logger:    logger,

		NotifyDestination: cfg.NotifyDestination,
		NotifyTimeout:     cfg.NotifyTimeout,
	})
	handler := intake.NewHandler(svc)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		intake.RegisterRoutes(r, handler)
	})

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
