package app

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/cmkladzyk/rwepcafenew/internal/adapters/observability"
	"github.com/cmkladzyk/rwepcafenew/internal/domain"
)

const providerPlacesKey = "places:provider"

// PlaceCache owns the lazily-initialized snapshot of the provider's place
// collection: in-process TTL cache first, then the shared cache, then one
// single-flighted provider fetch. A failed fetch is not cached, so a later
// request retries with a fresh attempt while the failing one degrades to an
// empty contribution.
type PlaceCache struct {
	provider domain.PlaceProvider
	shared   domain.Cache // optional
	local    *gocache.Cache
	group    singleflight.Group
	ttl      time.Duration
	log      zerolog.Logger
}

func NewPlaceCache(p domain.PlaceProvider, shared domain.Cache, ttl time.Duration, log zerolog.Logger) *PlaceCache {
	return &PlaceCache{
		provider: p,
		shared:   shared,
		local:    gocache.New(ttl, 2*ttl),
		ttl:      ttl,
		log:      log,
	}
}

// Get returns the provider's places, fetching at most once per TTL window no
// matter how many requests arrive concurrently. On failure it logs for
// operators and returns nil: the caller proceeds with the places it already
// has.
func (pc *PlaceCache) Get(ctx context.Context) []domain.Place {
	if v, ok := pc.local.Get(providerPlacesKey); ok {
		observability.ObserveCache("local", "hit")
		return v.([]domain.Place)
	}
	observability.ObserveCache("local", "miss")

	v, err, _ := pc.group.Do(providerPlacesKey, func() (any, error) {
		// A concurrent caller may have filled the cache while we queued.
		if v, ok := pc.local.Get(providerPlacesKey); ok {
			return v.([]domain.Place), nil
		}
		return pc.fetch(ctx)
	})
	if err != nil {
		pc.log.Error().Err(err).Msg("place provider fetch failed; serving without provider places")
		return nil
	}
	return v.([]domain.Place)
}

func (pc *PlaceCache) fetch(ctx context.Context) ([]domain.Place, error) {
	if pc.shared != nil {
		var cached []domain.Place
		if ok, err := pc.shared.Get(ctx, providerPlacesKey, &cached); err != nil {
			pc.log.Warn().Err(err).Msg("shared place cache read failed")
		} else if ok {
			pc.local.Set(providerPlacesKey, cached, pc.ttl)
			return cached, nil
		}
	}

	places, err := pc.provider.List(ctx)
	if err != nil {
		return nil, err
	}
	pc.local.Set(providerPlacesKey, places, pc.ttl)
	if pc.shared != nil {
		if err := pc.shared.Set(ctx, providerPlacesKey, places, int(pc.ttl.Seconds())); err != nil {
			pc.log.Warn().Err(err).Msg("shared place cache write failed")
		}
	}
	pc.log.Info().Int("count", len(places)).Msg("provider places refreshed")
	return places, nil
}

// Invalidate drops both cache tiers, forcing the next Get to refetch.
func (pc *PlaceCache) Invalidate(ctx context.Context) {
	pc.local.Delete(providerPlacesKey)
	if pc.shared != nil {
		if err := pc.shared.Del(ctx, providerPlacesKey); err != nil {
			pc.log.Warn().Err(err).Msg("shared place cache delete failed")
		}
	}
}
