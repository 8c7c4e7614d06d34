package app_test

import (
	"testing"
	"time"

	"github.com/cmkladzyk/rwepcafenew/internal/app"
	"github.com/cmkladzyk/rwepcafenew/internal/domain"
)

func scoredPlace() domain.Place {
	return domain.Place{
		ID:             "test",
		Name:           "Test Café",
		Wifi:           &domain.Wifi{Rating: 5, Free: true, LastTestMbpsDown: ptr(100.0)},
		Outlets:        domain.OutletsMany,
		Noise:          domain.NoiseQuiet,
		LastVerifiedAt: ptr("2024-02-20T15:00:00-07:00"),
	}
}

func TestComputeScore_HighAmenities(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("MST", -7*3600))
	got := app.ComputeScore(scoredPlace(), true, now)
	// wifi 1.0*0.4 + outlets 1.0*0.2 + noise 1.0*0.2 + open 0.1 + freshness ~0.1
	if got <= 85 {
		t.Fatalf("expected high score, got %d", got)
	}
	if got > 100 {
		t.Fatalf("score out of range: %d", got)
	}
}

func TestComputeScore_MissingWifiPenalized(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := scoredPlace()
	p.Wifi = nil
	withWifi := app.ComputeScore(scoredPlace(), true, now)
	without := app.ComputeScore(p, true, now)
	if without >= withWifi {
		t.Fatalf("missing wifi must cost the full factor: %d vs %d", without, withWifi)
	}
	if diff := withWifi - without; diff != 40 {
		t.Fatalf("wifi factor is worth 40 points, got %d", diff)
	}
}

func TestComputeScore_MissingOutletsNeutral(t *testing.T) {
	// Missing outlets/noise stay neutral (0.5), unlike missing wifi.
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	unknown := scoredPlace()
	unknown.Outlets = ""
	unknown.Noise = ""
	explicit := scoredPlace()
	explicit.Outlets = domain.OutletsUnknown
	explicit.Noise = domain.NoiseUnknown
	if a, b := app.ComputeScore(unknown, true, now), app.ComputeScore(explicit, true, now); a != b {
		t.Fatalf("absent and unknown should score alike: %d vs %d", a, b)
	}
}

func TestComputeScore_FreshnessDecay(t *testing.T) {
	p := scoredPlace()
	p.LastVerifiedAt = ptr("2023-06-01T12:00:00-07:00")
	recent := app.ComputeScore(p, false, time.Date(2023, 6, 5, 12, 0, 0, 0, time.UTC))
	stale := app.ComputeScore(p, false, time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC))
	if recent <= stale {
		t.Fatalf("freshness should decay: recent=%d stale=%d", recent, stale)
	}
}

func TestComputeScore_FreshnessSymmetric(t *testing.T) {
	// Future-dated verification decays like past-dated.
	p := scoredPlace()
	p.LastVerifiedAt = ptr("2024-03-01T12:00:00Z")
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	past := app.ComputeScore(p, false, now.AddDate(0, 0, 90))
	future := app.ComputeScore(p, false, now.AddDate(0, 0, -90))
	if past != future {
		t.Fatalf("decay not symmetric: past=%d future=%d", past, future)
	}
}

func TestComputeScore_UnparsableVerifiedAtNeutral(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	bad := scoredPlace()
	bad.LastVerifiedAt = ptr("last tuesday")
	absent := scoredPlace()
	absent.LastVerifiedAt = nil
	if a, b := app.ComputeScore(bad, true, now), app.ComputeScore(absent, true, now); a != b {
		t.Fatalf("unparsable lastVerifiedAt should be neutral: %d vs %d", a, b)
	}
}

func TestComputeScore_ClosedLosesOpenFactor(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	open := app.ComputeScore(scoredPlace(), true, now)
	closed := app.ComputeScore(scoredPlace(), false, now)
	if open-closed != 10 {
		t.Fatalf("open factor is worth 10 points, got %d", open-closed)
	}
}
