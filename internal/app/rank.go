package app

import (
	"sort"
	"time"

	"github.com/cmkladzyk/rwepcafenew/internal/domain"
)

// SortResults orders results in place according to the sort strategy. The
// sort is stable, so equal keys keep their input order. A distance sort
// without an origin degrades to best: we never order by an undefined
// distance.
func SortResults(rs []domain.Result, strategy domain.Sort, hasOrigin bool) {
	if strategy == domain.SortDistance && !hasOrigin {
		strategy = domain.SortBest
	}
	switch strategy {
	case domain.SortDistance:
		sort.SliceStable(rs, func(i, j int) bool {
			return distanceOrInf(rs[i]) < distanceOrInf(rs[j])
		})
	case domain.SortWifi:
		sort.SliceStable(rs, func(i, j int) bool {
			a, b := rs[i], rs[j]
			if ra, rb := wifiRating(a), wifiRating(b); ra != rb {
				return ra > rb
			}
			if sa, sb := wifiSpeed(a), wifiSpeed(b); sa != sb {
				return sa > sb
			}
			return scoreOrZero(a) > scoreOrZero(b)
		})
	case domain.SortFreshness:
		sort.SliceStable(rs, func(i, j int) bool {
			a, b := rs[i], rs[j]
			ta, tb := verifiedAt(a), verifiedAt(b)
			if !ta.Equal(tb) {
				return ta.After(tb)
			}
			return scoreOrZero(a) > scoreOrZero(b)
		})
	default: // best
		sort.SliceStable(rs, func(i, j int) bool {
			return scoreOrZero(rs[i]) > scoreOrZero(rs[j])
		})
	}
}

// Paginate slices one page out of the sorted set. A page beyond the end
// yields empty items with the total unchanged.
func Paginate(rs []domain.Result, page, pageSize int) (items []domain.Result, total int) {
	total = len(rs)
	start := (page - 1) * pageSize
	if start >= total {
		return []domain.Result{}, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return rs[start:end], total
}

func distanceOrInf(r domain.Result) float64 {
	if r.DistanceKm == nil {
		return maxDistance
	}
	return *r.DistanceKm
}

// Sentinel beyond any real great-circle distance: missing distances sort last.
const maxDistance = 1 << 20

func wifiRating(r domain.Result) int {
	if r.Wifi == nil {
		return 0
	}
	return r.Wifi.Rating
}

func wifiSpeed(r domain.Result) float64 {
	if r.Wifi == nil || r.Wifi.LastTestMbpsDown == nil {
		return 0
	}
	return *r.Wifi.LastTestMbpsDown
}

func scoreOrZero(r domain.Result) int {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}

// verifiedAt treats missing or unparsable timestamps as the zero time, the
// earliest possible, so unverified places sort to the bottom of freshness.
func verifiedAt(r domain.Result) time.Time {
	if r.LastVerifiedAt == nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, *r.LastVerifiedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
