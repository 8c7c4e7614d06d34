// Command probe checks provider coverage: it runs one text search per
// configured query with bounded concurrency and reports what came back.
// Useful before pointing the API at a new city or query set.
package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/cmkladzyk/rwepcafenew/internal/adapters/googleplaces"
	"github.com/cmkladzyk/rwepcafenew/internal/adapters/observability"
	"github.com/cmkladzyk/rwepcafenew/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	queries := cfg.ProbeQuery
	if len(queries) == 0 {
		queries = []string{cfg.PlacesQuery}
	}

	log.Info().
		Str("base", cfg.PlacesBase).
		Int("workers", cfg.ProbeWorker).
		Int("queries", len(queries)).
		Msg("probe starting")

	client, err := googleplaces.New(cfg.PlacesBase, cfg.PlacesKey, cfg.PlacesQuery, cfg.PlacesRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize places client")
	}

	sem := semaphore.NewWeighted(int64(cfg.ProbeWorker))
	var wg sync.WaitGroup

	for _, q := range queries {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(textQuery string) {
			defer wg.Done()
			defer sem.Release(int64(1))

			places, err := client.Search(ctx, textQuery)
			if err != nil {
				log.Warn().Str("query", textQuery).Err(err).Msg("probe failed")
				return
			}
			withHours := 0
			for _, p := range places {
				if len(p.Hours) > 0 {
					withHours++
				}
			}
			log.Info().
				Str("query", textQuery).
				Int("places", len(places)).
				Int("with_hours", withHours).
				Msg("probe ok")
		}(q)
	}

	wg.Wait()
	log.Info().Msg("probe completed")
}
