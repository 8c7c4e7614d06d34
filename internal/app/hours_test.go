package app_test

import (
	"testing"
	"time"

	"github.com/cmkladzyk/rwepcafenew/internal/app"
	"github.com/cmkladzyk/rwepcafenew/internal/domain"
)

func overnightPlace() domain.Place {
	return domain.Place{
		ID: "nocturne",
		Hours: map[string][]domain.HoursRange{
			"friday":   {{Open: "22:00", Close: "02:00"}},
			"saturday": {{Open: "22:00", Close: "02:00"}},
		},
	}
}

func TestResolveHours_OpenWithinRange(t *testing.T) {
	loc := mustLoc(t, "America/Denver")
	p := domain.Place{
		ID: "daytime",
		Hours: map[string][]domain.HoursRange{
			"friday": {{Open: "06:30", Close: "20:00"}},
		},
	}
	// 2024-03-01 is a Friday.
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, loc)
	hi := app.ResolveHours(p, at, loc)
	if !hi.IsOpen {
		t.Fatalf("expected open at noon Friday")
	}
	wantClose := time.Date(2024, 3, 1, 20, 0, 0, 0, loc)
	if hi.ClosesAt == nil || !hi.ClosesAt.Equal(wantClose) {
		t.Fatalf("closesAt: got %v want %v", hi.ClosesAt, wantClose)
	}
}

func TestResolveHours_ClosedAfterHours(t *testing.T) {
	loc := mustLoc(t, "America/Denver")
	p := domain.Place{
		ID: "daytime",
		Hours: map[string][]domain.HoursRange{
			"friday": {{Open: "06:30", Close: "20:00"}},
		},
	}
	at := time.Date(2024, 3, 1, 21, 30, 0, 0, loc)
	if hi := app.ResolveHours(p, at, loc); hi.IsOpen || hi.ClosesAt != nil {
		t.Fatalf("expected closed at 21:30, got %+v", hi)
	}
}

func TestResolveHours_OvernightSpillover(t *testing.T) {
	loc := mustLoc(t, "America/Denver")
	p := overnightPlace()

	// Saturday 01:00 falls inside Friday's 22:00–02:00 range.
	at := time.Date(2024, 3, 2, 1, 0, 0, 0, loc)
	hi := app.ResolveHours(p, at, loc)
	if !hi.IsOpen {
		t.Fatalf("expected open during Friday's overnight range")
	}
	wantClose := time.Date(2024, 3, 2, 2, 0, 0, 0, loc)
	if hi.ClosesAt == nil || !hi.ClosesAt.Equal(wantClose) {
		t.Fatalf("closesAt: got %v want %v", hi.ClosesAt, wantClose)
	}

	// Saturday 03:00 is past both Friday's spillover and before Saturday's
	// own opening.
	at = time.Date(2024, 3, 2, 3, 0, 0, 0, loc)
	if hi := app.ResolveHours(p, at, loc); hi.IsOpen {
		t.Fatalf("expected closed at 03:00 Saturday")
	}

	// Saturday 23:00 is inside Saturday's own range.
	at = time.Date(2024, 3, 2, 23, 0, 0, 0, loc)
	hi = app.ResolveHours(p, at, loc)
	if !hi.IsOpen {
		t.Fatalf("expected open at 23:00 Saturday")
	}
	wantClose = time.Date(2024, 3, 3, 2, 0, 0, 0, loc)
	if hi.ClosesAt == nil || !hi.ClosesAt.Equal(wantClose) {
		t.Fatalf("closesAt: got %v want %v", hi.ClosesAt, wantClose)
	}
}

func TestResolveHours_ExclusiveCloseBoundary(t *testing.T) {
	loc := mustLoc(t, "America/Denver")
	p := domain.Place{
		ID: "daytime",
		Hours: map[string][]domain.HoursRange{
			"friday": {{Open: "06:30", Close: "20:00"}},
		},
	}
	open := app.ResolveHours(p, time.Date(2024, 3, 1, 6, 30, 0, 0, loc), loc)
	if !open.IsOpen {
		t.Fatalf("open boundary should be inclusive")
	}
	closed := app.ResolveHours(p, time.Date(2024, 3, 1, 20, 0, 0, 0, loc), loc)
	if closed.IsOpen {
		t.Fatalf("close boundary should be exclusive")
	}
}

func TestResolveHours_NoHours(t *testing.T) {
	loc := mustLoc(t, "America/Denver")
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, loc)

	if hi := app.ResolveHours(domain.Place{ID: "bare"}, at, loc); hi.IsOpen {
		t.Fatalf("place without hours must report closed")
	}

	// no entry for the relevant weekday
	p := domain.Place{
		ID:    "weekend-only",
		Hours: map[string][]domain.HoursRange{"saturday": {{Open: "09:00", Close: "17:00"}}},
	}
	if hi := app.ResolveHours(p, at, loc); hi.IsOpen {
		t.Fatalf("no Friday entry must report closed on Friday")
	}
}

func TestResolveHours_MalformedRangeSkipped(t *testing.T) {
	loc := mustLoc(t, "America/Denver")
	p := domain.Place{
		ID: "broken",
		Hours: map[string][]domain.HoursRange{
			"friday": {{Open: "garbage", Close: "20:00"}, {Open: "09:00", Close: "17:00"}},
		},
	}
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, loc)
	hi := app.ResolveHours(p, at, loc)
	if !hi.IsOpen {
		t.Fatalf("valid sibling range should still apply")
	}
}

func TestFormatClosingTime(t *testing.T) {
	loc := mustLoc(t, "America/Denver")
	at := time.Date(2024, 3, 1, 20, 0, 0, 0, loc)
	if got := app.FormatClosingTime(&at, loc); got != "08:00 PM" {
		t.Fatalf("got %q", got)
	}
	if got := app.FormatClosingTime(nil, loc); got != "" {
		t.Fatalf("nil should format empty, got %q", got)
	}
}
