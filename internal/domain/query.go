package domain

import "time"

// Sort strategies. Zero value is treated as SortBest by the normalizer.
type Sort string

const (
	SortBest      Sort = "best"
	SortDistance  Sort = "distance"
	SortWifi      Sort = "wifi"
	SortFreshness Sort = "freshness"
)

func (s Sort) Valid() bool {
	switch s {
	case SortBest, SortDistance, SortWifi, SortFreshness:
		return true
	}
	return false
}

type AccessibilityFilter struct {
	StepFree       *bool
	MinDoorWidthIn *float64
}

// Query is the normalized set of filter/sort/pagination parameters for one
// search request. Nil pointer / empty slice means "dimension not filtered".
// It is constructed once by the normalizer, never patched field-by-field at
// call sites.
type Query struct {
	Q        *string
	WifiMin  *int
	WifiFree *bool

	Outlets  []Outlets
	Noise    []Noise
	Seating  []Seating
	Price    []Price
	Bathroom []Bathroom
	Parking  []Parking
	Tags     []string

	OpenNow *bool
	HoursAt *time.Time

	Accessibility *AccessibilityFilter

	MaxDistanceKm *float64
	Lat           *float64
	Lon           *float64

	Sort     Sort
	Page     int
	PageSize int
}

// Origin reports whether the query carries a distance origin, and its
// coordinates when it does. The distance filter and the distance sort both
// require a full lat/lon pair.
func (q Query) Origin() (lat, lon float64, ok bool) {
	if q.Lat == nil || q.Lon == nil {
		return 0, 0, false
	}
	return *q.Lat, *q.Lon, true
}
