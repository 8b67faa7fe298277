package main

import (
	"net/http"
	"os"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/andrewpaige1/fliply-api/classcodes"
	"github.com/andrewpaige1/fliply-api/config"
	"github.com/andrewpaige1/fliply-api/handlers"
	"github.com/andrewpaige1/fliply-api/middleware"
	"github.com/andrewpaige1/fliply-api/repository"
)

func main() {
	cfg := config.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.PrettyLog {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	// Initialize database connection
	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}

	codes := classcodes.New(nil)
	if cfg.ClassCodesPath != "" {
		codes, err = classcodes.Load(cfg.ClassCodesPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.ClassCodesPath).Msg("failed to load class codes")
		}
		log.Info().Int("count", codes.Len()).Msg("loaded class codes")
	}

	authMiddleware, err := middleware.EnsureValidToken(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up JWT validation")
	}

	users := repository.NewUsers(db)
	setHandler := handlers.NewSetHandler(repository.NewSets(db), codes)
	userSync := middleware.UserSync{Users: users}

	mux := http.NewServeMux()
	setHandler.RegisterRoutes(mux, userSync.SyncUserMiddleware)

	var handler http.Handler = authMiddleware(mux)
	handler = chimiddleware.Recoverer(handler)
	handler = middleware.RequestLogger(log.Logger)(handler)
	handler = chimiddleware.RealIP(handler)
	handler = chimiddleware.RequestID(handler)

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(handler)

	serverAddr := "0.0.0.0:" + cfg.Port
	log.Info().Str("addr", serverAddr).Msg("server listening")
	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
