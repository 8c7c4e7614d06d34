package app

import (
	"math"
	"time"

	"github.com/cmkladzyk/rwepcafenew/internal/domain"
)

const freshnessDecayDays = 180

var outletWeights = map[domain.Outlets]float64{
	domain.OutletsMany:    1,
	domain.OutletsSome:    0.7,
	domain.OutletsScarce:  0.4,
	domain.OutletsUnknown: 0.5,
}

var noiseWeights = map[domain.Noise]float64{
	domain.NoiseQuiet:    1,
	domain.NoiseModerate: 0.8,
	domain.NoiseLoud:     0.2,
	domain.NoiseVaries:   0.6,
	domain.NoiseUnknown:  0.5,
}

// ComputeScore computes the composite 0..100 relevance score. A place with
// no wifi record scores the Wi-Fi factor 0; a missing outlets or noise value
// stays neutral at 0.5.
func ComputeScore(p domain.Place, isOpen bool, now time.Time) int {
	wifiScore := 0.0
	if p.Wifi != nil {
		wifiScore = clamp(float64(p.Wifi.Rating)/5, 0, 1)
	}

	outletsScore := 0.5
	if p.Outlets != "" {
		if w, ok := outletWeights[p.Outlets]; ok {
			outletsScore = w
		}
	}
	noiseScore := 0.5
	if p.Noise != "" {
		if w, ok := noiseWeights[p.Noise]; ok {
			noiseScore = w
		}
	}

	openScore := 0.0
	if isOpen {
		openScore = 1
	}

	// Freshness decays linearly over 180 days, symmetric in time direction.
	// Absent or unparsable lastVerifiedAt stays neutral.
	freshnessScore := 0.5
	if p.LastVerifiedAt != nil {
		if verified, err := time.Parse(time.RFC3339, *p.LastVerifiedAt); err == nil {
			days := math.Abs(now.Sub(verified).Hours() / 24)
			freshnessScore = clamp(1-days/freshnessDecayDays, 0, 1)
		}
	}

	total := wifiScore*0.4 +
		outletsScore*0.2 +
		noiseScore*0.2 +
		openScore*0.1 +
		freshnessScore*0.1

	return int(math.Round(total * 100))
}
