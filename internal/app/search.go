package app

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/cmkladzyk/rwepcafenew/internal/adapters/observability"
	"github.com/cmkladzyk/rwepcafenew/internal/domain"
)

// SearchService runs the full query pipeline: normalize → filter → resolve
// hours → annotate distance → score → rank → paginate. It is stateless per
// request; the only shared state is the place cache.
type SearchService struct {
	seed  []domain.Place
	cache *PlaceCache // nil when no provider is configured
	loc   *time.Location
	log   zerolog.Logger
}

func NewSearchService(seed []domain.Place, cache *PlaceCache, loc *time.Location, log zerolog.Logger) *SearchService {
	return &SearchService{seed: seed, cache: cache, loc: loc, log: log}
}

// Search evaluates a query against the current place collection. now is the
// evaluation instant; an hoursAt override in the query takes precedence.
func (s *SearchService) Search(ctx context.Context, q domain.Query, now time.Time) domain.SearchPage {
	q = Sanitize(q)
	if q.HoursAt != nil {
		now = *q.HoursAt
	}

	places := s.places(ctx)
	observability.ObserveSearch("considered", len(places))

	originLat, originLon, hasOrigin := q.Origin()

	results := make([]domain.Result, 0, len(places))
	for _, p := range places {
		if !MatchesPlace(p, q) {
			continue
		}
		r := domain.Result{Place: p}
		hi := ResolveHours(p, now, s.loc)
		r.IsOpen = hi.IsOpen
		r.ClosesAt = hi.ClosesAt
		if hasOrigin {
			d := round2(DistanceKm(originLat, originLon, p.Lat, p.Lon))
			r.DistanceKm = &d
		}
		score := ComputeScore(p, r.IsOpen, now)
		r.Score = &score
		if !MatchesResult(r, q) {
			continue
		}
		results = append(results, r)
	}
	observability.ObserveSearch("matched", len(results))

	SortResults(results, q.Sort, hasOrigin)
	items, total := Paginate(results, q.Page, q.PageSize)
	observability.ObserveSearch("returned", len(items))

	return domain.SearchPage{
		Items:    items,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
}

// places merges the seed baseline with the provider collection. Provider
// records win on id collisions (they are fresher); seed order is preserved
// so tie-breaking stays deterministic.
func (s *SearchService) places(ctx context.Context) []domain.Place {
	if s.cache == nil {
		return s.seed
	}
	fetched := s.cache.Get(ctx)
	if len(fetched) == 0 {
		return s.seed
	}

	byID := make(map[string]domain.Place, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}
	merged := make([]domain.Place, 0, len(s.seed)+len(fetched))
	for _, p := range s.seed {
		if fresh, ok := byID[p.ID]; ok {
			merged = append(merged, fresh)
			delete(byID, p.ID)
			continue
		}
		merged = append(merged, p)
	}
	for _, p := range fetched {
		if _, ok := byID[p.ID]; ok {
			merged = append(merged, p)
		}
	}
	return merged
}

// round2 matches the wire precision of distanceKm (two decimals); the
// distance filter compares against the rounded value.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
