package app_test

import (
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/cmkladzyk/rwepcafenew/internal/app"
	"github.com/cmkladzyk/rwepcafenew/internal/domain"
)

func TestParseQuery_Defaults(t *testing.T) {
	q := app.ParseQuery(url.Values{})
	if q.Page != 1 || q.PageSize != app.DefaultPageSize || q.Sort != domain.SortBest {
		t.Fatalf("unexpected defaults: %+v", q)
	}
	if q.Q != nil || q.WifiMin != nil || q.WifiFree != nil || q.OpenNow != nil ||
		q.HoursAt != nil || q.Accessibility != nil || q.Lat != nil {
		t.Fatalf("expected absent filters: %+v", q)
	}
}

func TestParseQuery_BoolTokens(t *testing.T) {
	cases := map[string]*bool{
		"1":     ptr(true),
		"true":  ptr(true),
		"ON":    ptr(true),
		"0":     ptr(false),
		"False": ptr(false),
		"yes":   nil,
		"2":     nil,
		"":      nil,
	}
	for in, want := range cases {
		q := app.ParseQuery(url.Values{"wifiFree": {in}})
		switch {
		case want == nil && q.WifiFree != nil:
			t.Fatalf("%q: expected absent, got %v", in, *q.WifiFree)
		case want != nil && (q.WifiFree == nil || *q.WifiFree != *want):
			t.Fatalf("%q: expected %v, got %v", in, *want, q.WifiFree)
		}
	}
}

func TestParseQuery_WifiMinRange(t *testing.T) {
	for _, in := range []string{"0", "6", "-1", "3.5", "abc", "NaN"} {
		if q := app.ParseQuery(url.Values{"wifiMin": {in}}); q.WifiMin != nil {
			t.Fatalf("wifiMin=%q should be dropped, got %d", in, *q.WifiMin)
		}
	}
	q := app.ParseQuery(url.Values{"wifiMin": {"4"}})
	if q.WifiMin == nil || *q.WifiMin != 4 {
		t.Fatalf("wifiMin=4 not parsed: %+v", q.WifiMin)
	}
}

func TestParseQuery_MultiSelect(t *testing.T) {
	q := app.ParseQuery(url.Values{"outlets": {" many , some ,,bogus"}})
	want := []domain.Outlets{domain.OutletsMany, domain.OutletsSome}
	if !reflect.DeepEqual(q.Outlets, want) {
		t.Fatalf("outlets: got %v want %v", q.Outlets, want)
	}

	// all-invalid tokens collapse to an absent filter
	q = app.ParseQuery(url.Values{"noise": {"screaming, , "}})
	if q.Noise != nil {
		t.Fatalf("expected absent noise filter, got %v", q.Noise)
	}

	// tags stay an open set
	q = app.ParseQuery(url.Values{"tags": {"remote-friendly, anything "}})
	if !reflect.DeepEqual(q.Tags, []string{"remote-friendly", "anything"}) {
		t.Fatalf("tags: %v", q.Tags)
	}
}

func TestParseQuery_PaginationClamps(t *testing.T) {
	q := app.ParseQuery(url.Values{"page": {"2.9"}, "pageSize": {"500"}})
	if q.Page != 2 {
		t.Fatalf("page floored: got %d", q.Page)
	}
	if q.PageSize != app.MaxPageSize {
		t.Fatalf("pageSize clamped: got %d", q.PageSize)
	}

	q = app.ParseQuery(url.Values{"page": {"0"}, "pageSize": {"-3"}})
	if q.Page != 1 || q.PageSize != app.DefaultPageSize {
		t.Fatalf("out-of-range pagination should fall back to defaults: %+v", q)
	}
}

func TestParseQuery_Accessibility(t *testing.T) {
	q := app.ParseQuery(url.Values{})
	if q.Accessibility != nil {
		t.Fatalf("no accessibility params should mean no sub-filter")
	}

	q = app.ParseQuery(url.Values{"accessibilityMinDoorWidthIn": {"32"}})
	if q.Accessibility == nil || q.Accessibility.StepFree != nil ||
		q.Accessibility.MinDoorWidthIn == nil || *q.Accessibility.MinDoorWidthIn != 32 {
		t.Fatalf("unexpected accessibility: %+v", q.Accessibility)
	}

	q = app.ParseQuery(url.Values{"accessibilityStepFree": {"1"}})
	if q.Accessibility == nil || q.Accessibility.StepFree == nil || !*q.Accessibility.StepFree {
		t.Fatalf("unexpected accessibility: %+v", q.Accessibility)
	}
}

func TestParseQuery_BadHoursAtDropped(t *testing.T) {
	q := app.ParseQuery(url.Values{"hoursAt": {"not-a-time"}})
	if q.HoursAt != nil {
		t.Fatalf("unparsable hoursAt must fall back to evaluation time")
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	q := domain.Query{Page: -5, PageSize: 1000}
	once := app.Sanitize(q)
	twice := app.Sanitize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("sanitize not idempotent: %+v vs %+v", once, twice)
	}
	if once.Page != 1 || once.PageSize != app.MaxPageSize {
		t.Fatalf("unexpected clamp: %+v", once)
	}
}

func TestSerializeQuery_RoundTrip(t *testing.T) {
	params := url.Values{
		"q":                           {"espresso"},
		"wifiMin":                     {"3"},
		"wifiFree":                    {"true"},
		"outlets":                     {"many,some"},
		"noise":                       {"quiet"},
		"seating":                     {"tables,outdoor"},
		"price":                       {"$,$$"},
		"bathroom":                    {"yes"},
		"parking":                     {"street"},
		"tags":                        {"remote-friendly,late-hours"},
		"openNow":                     {"1"},
		"hoursAt":                     {"2024-03-01T21:30:00-07:00"},
		"accessibilityStepFree":       {"1"},
		"accessibilityMinDoorWidthIn": {"32"},
		"maxDistanceKm":               {"2.5"},
		"lat":                         {"31.759"},
		"lon":                         {"-106.491"},
		"sort":                        {"distance"},
		"page":                        {"3"},
		"pageSize":                    {"50"},
	}
	first := app.ParseQuery(params)
	second := app.ParseQuery(app.SerializeQuery(first))

	// time values compare with Equal; everything else structurally
	if first.HoursAt == nil || second.HoursAt == nil || !first.HoursAt.Equal(*second.HoursAt) {
		t.Fatalf("hoursAt did not survive: %v vs %v", first.HoursAt, second.HoursAt)
	}
	first.HoursAt, second.HoursAt = nil, nil
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("round trip mismatch:\n first=%+v\nsecond=%+v", first, second)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	params := url.Values{"wifiMin": {"5"}, "sort": {"wifi"}, "pageSize": {"10"}}
	once := app.ParseQuery(params)
	again := app.ParseQuery(app.SerializeQuery(once))
	again = app.Sanitize(again)
	if !reflect.DeepEqual(once, again) {
		t.Fatalf("normalizing a normalized query changed it:\n%+v\n%+v", once, again)
	}
}

func ptr[T any](v T) *T { return &v }

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}
