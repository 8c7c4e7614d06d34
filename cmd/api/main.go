package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cmkladzyk/rwepcafenew/internal/adapters/googleplaces"
	server "github.com/cmkladzyk/rwepcafenew/internal/adapters/http_server"
	"github.com/cmkladzyk/rwepcafenew/internal/adapters/observability"
	redisad "github.com/cmkladzyk/rwepcafenew/internal/adapters/redis"
	"github.com/cmkladzyk/rwepcafenew/internal/adapters/seed"
	"github.com/cmkladzyk/rwepcafenew/internal/app"
	"github.com/cmkladzyk/rwepcafenew/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.Timezone).Msg("load timezone failed")
	}

	places, err := seed.Places()
	if err != nil {
		log.Fatal().Err(err).Msg("load seed places failed")
	}
	log.Info().Int("count", len(places)).Msg("seed places loaded")

	// The provider is optional: without an API key we serve the seed
	// collection only.
	var cache *app.PlaceCache
	if cfg.PlacesKey != "" {
		provider, err := googleplaces.New(cfg.PlacesBase, cfg.PlacesKey, cfg.PlacesQuery, cfg.PlacesRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize places client")
		}
		shared := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		cache = app.NewPlaceCache(provider, shared, cfg.CacheTTL, log.Logger)
	}

	svc := app.NewSearchService(places, cache, loc, log.Logger)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
