package app

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cmkladzyk/rwepcafenew/internal/domain"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParseQuery turns raw string parameters into a normalized Query. Malformed
// or out-of-range values are dropped to their absent/default state, never
// rejected: the request always produces a best-effort result.
func ParseQuery(params url.Values) domain.Query {
	q := domain.Query{
		Sort:     domain.SortBest,
		Page:     1,
		PageSize: DefaultPageSize,
	}

	if s := params.Get("q"); s != "" {
		q.Q = &s
	}

	if f := parseNumber(params.Get("wifiMin")); f != nil && *f >= 1 && *f <= 5 {
		if n := int(*f); float64(n) == *f {
			q.WifiMin = &n
		}
	}
	q.WifiFree = parseBool(params.Get("wifiFree"))

	q.Outlets = parseEnumList(params.Get("outlets"), domain.OutletsScarce, domain.OutletsSome, domain.OutletsMany)
	q.Noise = parseEnumList(params.Get("noise"), domain.NoiseQuiet, domain.NoiseModerate, domain.NoiseLoud, domain.NoiseVaries)
	q.Seating = parseEnumList(params.Get("seating"), domain.SeatingBar, domain.SeatingTables, domain.SeatingSofas, domain.SeatingOutdoor)
	q.Price = parseEnumList(params.Get("price"), domain.PriceLow, domain.PriceMid, domain.PriceHigh)
	q.Bathroom = parseEnumList(params.Get("bathroom"), domain.BathroomYes, domain.BathroomCustomers)
	q.Parking = parseEnumList(params.Get("parking"), domain.ParkingStreet, domain.ParkingLot, domain.ParkingGarage)
	q.Tags = splitList(params.Get("tags"))

	q.OpenNow = parseBool(params.Get("openNow"))
	if s := params.Get("hoursAt"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			q.HoursAt = &t
		}
	}

	stepFree := parseBool(params.Get("accessibilityStepFree"))
	minDoor := parseNumber(params.Get("accessibilityMinDoorWidthIn"))
	if stepFree != nil || minDoor != nil {
		q.Accessibility = &domain.AccessibilityFilter{StepFree: stepFree, MinDoorWidthIn: minDoor}
	}

	q.MaxDistanceKm = parseNumber(params.Get("maxDistanceKm"))
	q.Lat = parseNumber(params.Get("lat"))
	q.Lon = parseNumber(params.Get("lon"))

	if s := domain.Sort(params.Get("sort")); s.Valid() {
		q.Sort = s
	}

	if f := parseNumber(params.Get("page")); f != nil && *f >= 1 {
		q.Page = int(math.Floor(*f))
	}
	if f := parseNumber(params.Get("pageSize")); f != nil && *f >= 1 {
		q.PageSize = int(math.Floor(*f))
		if q.PageSize > MaxPageSize {
			q.PageSize = MaxPageSize
		}
	}

	return Sanitize(q)
}

// Sanitize re-clamps pagination into its legal ranges. Idempotent, and safe
// to apply to caller-constructed queries (a zero PageSize falls back to the
// default rather than the minimum).
func Sanitize(q domain.Query) domain.Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize < 1 {
		q.PageSize = 1
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	if q.Sort == "" || !q.Sort.Valid() {
		q.Sort = domain.SortBest
	}
	return q
}

// SerializeQuery renders a normalized Query back into URL parameters,
// omitting defaults. ParseQuery(SerializeQuery(q)) == q for any normalized q.
func SerializeQuery(q domain.Query) url.Values {
	params := url.Values{}
	if q.Q != nil && *q.Q != "" {
		params.Set("q", *q.Q)
	}
	if q.WifiMin != nil {
		params.Set("wifiMin", strconv.Itoa(*q.WifiMin))
	}
	if q.WifiFree != nil {
		params.Set("wifiFree", boolToken(*q.WifiFree))
	}
	setEnumList(params, "outlets", q.Outlets)
	setEnumList(params, "noise", q.Noise)
	setEnumList(params, "seating", q.Seating)
	setEnumList(params, "price", q.Price)
	setEnumList(params, "bathroom", q.Bathroom)
	setEnumList(params, "parking", q.Parking)
	if len(q.Tags) > 0 {
		params.Set("tags", strings.Join(q.Tags, ","))
	}
	if q.OpenNow != nil {
		params.Set("openNow", boolToken(*q.OpenNow))
	}
	if q.HoursAt != nil {
		params.Set("hoursAt", q.HoursAt.Format(time.RFC3339))
	}
	if q.Accessibility != nil {
		if q.Accessibility.StepFree != nil {
			params.Set("accessibilityStepFree", boolToken(*q.Accessibility.StepFree))
		}
		if q.Accessibility.MinDoorWidthIn != nil {
			params.Set("accessibilityMinDoorWidthIn", formatNumber(*q.Accessibility.MinDoorWidthIn))
		}
	}
	if q.MaxDistanceKm != nil {
		params.Set("maxDistanceKm", formatNumber(*q.MaxDistanceKm))
	}
	if q.Lat != nil {
		params.Set("lat", formatNumber(*q.Lat))
	}
	if q.Lon != nil {
		params.Set("lon", formatNumber(*q.Lon))
	}
	if q.Sort != "" && q.Sort != domain.SortBest {
		params.Set("sort", string(q.Sort))
	}
	if q.Page > 1 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize != DefaultPageSize {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	return params
}

// ---- parsing helpers ----

// parseBool recognizes 1/true/on and 0/false, case-insensitive. Anything
// else is absent.
func parseBool(v string) *bool {
	switch strings.ToLower(v) {
	case "1", "true", "on":
		t := true
		return &t
	case "0", "false":
		f := false
		return &f
	}
	return nil
}

func parseNumber(v string) *float64 {
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func boolToken(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// splitList parses a comma-separated value: tokens trimmed, empties dropped,
// empty result reported as nil (no filter).
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(v, ",") {
		if t := strings.TrimSpace(tok); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseEnumList keeps only tokens that are members of the dimension's enum.
func parseEnumList[T ~string](v string, allowed ...T) []T {
	var out []T
	for _, tok := range splitList(v) {
		for _, a := range allowed {
			if T(tok) == a {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

func setEnumList[T ~string](params url.Values, key string, vals []T) {
	if len(vals) == 0 {
		return
	}
	ss := make([]string, len(vals))
	for i, v := range vals {
		ss[i] = string(v)
	}
	params.Set(key, strings.Join(ss, ","))
}
