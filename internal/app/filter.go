package app

import (
	"strings"

	"github.com/cmkladzyk/rwepcafenew/internal/domain"
)

// MatchesPlace evaluates the text and amenity dimensions of a query against
// a raw place. Dimensions combine with AND; inside a multi-select dimension
// membership is OR. Every active dimension fails closed: a place missing the
// data a filter needs is excluded.
func MatchesPlace(p domain.Place, q domain.Query) bool {
	if q.Q != nil {
		term := strings.ToLower(*q.Q)
		if !textIncludes(p.Name, term) &&
			!textIncludes(derefStr(p.Address), term) &&
			!textIncludes(derefStr(p.Neighborhood), term) &&
			!textIncludes(strings.Join(p.Tags, " "), term) {
			return false
		}
	}

	if q.WifiMin != nil {
		if p.Wifi == nil || p.Wifi.Rating < *q.WifiMin {
			return false
		}
	}
	if q.WifiFree != nil {
		// Exact match, not "at least": wifiFree=0 keeps paid-only spots.
		if p.Wifi == nil || p.Wifi.Free != *q.WifiFree {
			return false
		}
	}

	if !matchesSingle(p.Outlets, q.Outlets) {
		return false
	}
	if !matchesSingle(p.Noise, q.Noise) {
		return false
	}
	if !matchesSet(p.Seating, q.Seating) {
		return false
	}
	if !matchesSingle(p.CoffeePrice, q.Price) {
		return false
	}
	if !matchesSingle(p.Bathroom, q.Bathroom) {
		return false
	}
	if !matchesSet(p.Parking, q.Parking) {
		return false
	}

	if !matchesAccessibility(p, q.Accessibility) {
		return false
	}

	if len(q.Tags) > 0 {
		if !intersects(p.Tags, q.Tags) {
			return false
		}
	}

	return true
}

// MatchesResult evaluates the dimensions that need derived fields: openNow
// (after hours resolution) and the distance filter (after annotation).
func MatchesResult(r domain.Result, q domain.Query) bool {
	if q.OpenNow != nil && *q.OpenNow && !r.IsOpen {
		return false
	}
	if _, _, ok := q.Origin(); ok && q.MaxDistanceKm != nil {
		if r.DistanceKm == nil || *r.DistanceKm > *q.MaxDistanceKm {
			return false
		}
	}
	return true
}

// matchesSingle: place's single categorical value must be one of the
// selected set; unset selection always passes, unset value fails.
func matchesSingle[T ~string](value T, selected []T) bool {
	if len(selected) == 0 {
		return true
	}
	if value == "" {
		return false
	}
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}

// matchesSet: place's value set must intersect the selected set.
func matchesSet[T ~string](values, selected []T) bool {
	if len(selected) == 0 {
		return true
	}
	if len(values) == 0 {
		return false
	}
	return intersects(values, selected)
}

func matchesAccessibility(p domain.Place, f *domain.AccessibilityFilter) bool {
	if f == nil || (f.StepFree == nil && f.MinDoorWidthIn == nil) {
		return true
	}
	a := p.Accessibility
	if a == nil {
		return false
	}
	if f.StepFree != nil {
		stepFree := a.StepFree != nil && *a.StepFree
		if stepFree != *f.StepFree {
			return false
		}
	}
	if f.MinDoorWidthIn != nil {
		if a.DoorWidthIn == nil || *a.DoorWidthIn < *f.MinDoorWidthIn {
			return false
		}
	}
	return true
}

func intersects[T comparable](values, selected []T) bool {
	for _, s := range selected {
		for _, v := range values {
			if s == v {
				return true
			}
		}
	}
	return false
}

func textIncludes(s, term string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), term)
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
