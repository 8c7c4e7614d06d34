package app

import (
	"math"

	"github.com/cmkladzyk/rwepcafenew/internal/domain"
)

const earthRadiusKm = 6371

type Bounds struct {
	North, South, East, West float64
}

// DistanceKm is the great-circle (haversine) distance between two WGS84
// coordinates, in kilometers.
func DistanceKm(aLat, aLon, bLat, bLon float64) float64 {
	dLat := radians(bLat - aLat)
	dLon := radians(bLon - aLon)
	lat1 := radians(aLat)
	lat2 := radians(bLat)

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// WithinBounds reports inclusive rectangular containment.
func WithinBounds(p domain.Place, b Bounds) bool {
	return p.Lat <= b.North && p.Lat >= b.South && p.Lon <= b.East && p.Lon >= b.West
}

// ClampBounds clamps latitude to [-90,90] and longitude to [-180,180].
func ClampBounds(b Bounds) Bounds {
	return Bounds{
		North: clamp(b.North, -90, 90),
		South: clamp(b.South, -90, 90),
		East:  clamp(b.East, -180, 180),
		West:  clamp(b.West, -180, 180),
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
