package googleplaces

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/cmkladzyk/rwepcafenew/internal/adapters/observability"
	"github.com/cmkladzyk/rwepcafenew/internal/domain"
)

// Client fetches café candidates from the Google Places Text Search API and
// maps them into domain places. It implements domain.PlaceProvider.
type Client struct {
	base  string
	hc    *http.Client
	key   string
	query string
	rl    *rate.Limiter
}

const defaultTextQuery = "remote friendly cafes in El Paso"

func New(base, key, textQuery string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	if textQuery == "" {
		textQuery = defaultTextQuery
	}
	return &Client{
		base:  base,
		hc:    &http.Client{Timeout: 20 * time.Second},
		key:   key,
		query: textQuery,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- wire types ----

type searchResponse struct {
	Status       string        `json:"status"`
	Results      []placeResult `json:"results"`
	ErrorMessage string        `json:"error_message"`
}

type placeResult struct {
	PlaceID          string `json:"place_id"`
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address"`
	Geometry         *struct {
		Location *struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	PriceLevel *int     `json:"price_level"`
	Types      []string `json:"types"`
}

// ---- Public API ----

// List runs the configured text search and returns the mapped places,
// deduplicated by place id (last one wins).
func (c *Client) List(ctx context.Context) ([]domain.Place, error) {
	return c.Search(ctx, c.query)
}

// Search runs a text search with an explicit query string.
func (c *Client) Search(ctx context.Context, textQuery string) ([]domain.Place, error) {
	params := url.Values{}
	params.Set("query", textQuery)
	params.Set("key", c.key)

	var resp searchResponse
	if err := c.get(ctx, c.base+"/textsearch/json?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	status := resp.Status
	if status == "" {
		status = "OK"
	}
	if status != "OK" && status != "ZERO_RESULTS" {
		if resp.ErrorMessage != "" {
			return nil, fmt.Errorf("places API error: %s - %s", status, resp.ErrorMessage)
		}
		return nil, fmt.Errorf("places API error: %s", status)
	}

	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	byID := make(map[string]int)
	var places []domain.Place
	for _, raw := range resp.Results {
		p, ok := mapPlace(raw, fetchedAt)
		if !ok {
			continue
		}
		if i, seen := byID[p.ID]; seen {
			places[i] = p
			continue
		}
		byID[p.ID] = len(places)
		places = append(places, p)
	}
	return places, nil
}

// mapPlace converts one API result; entries without coordinates are dropped.
func mapPlace(raw placeResult, fetchedAt string) (domain.Place, bool) {
	if raw.Geometry == nil || raw.Geometry.Location == nil ||
		raw.Geometry.Location.Lat == nil || raw.Geometry.Location.Lng == nil {
		return domain.Place{}, false
	}
	p := domain.Place{
		ID:             raw.PlaceID,
		Name:           raw.Name,
		Lat:            *raw.Geometry.Location.Lat,
		Lon:            *raw.Geometry.Location.Lng,
		CoffeePrice:    mapPriceLevel(raw.PriceLevel),
		LastVerifiedAt: &fetchedAt,
		Source:         "google",
	}
	if raw.FormattedAddress != "" {
		addr := raw.FormattedAddress
		p.Address = &addr
	}
	for _, t := range raw.Types {
		if t != "" {
			p.Tags = append(p.Tags, t)
		}
	}
	return p, true
}

func mapPriceLevel(level *int) domain.Price {
	switch {
	case level == nil:
		return ""
	case *level <= 1:
		return domain.PriceLow
	case *level == 2:
		return domain.PriceMid
	default:
		return domain.PriceHigh
	}
}

// ---- Internals ----

var (
	ErrNotFound     = errors.New("googleplaces: not found")
	ErrUnauthorized = errors.New("googleplaces: unauthorized")
	ErrForbidden    = errors.New("googleplaces: forbidden")
)

// get performs a GET with client-side rate limiting, retries, and JSON decode
// into out. Retries on 429 and transient 5xx, honoring Retry-After when
// provided.
func (c *Client) get(ctx context.Context, url string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "rwepcafenew/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("googleplaces", "textsearch", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if
// absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// i = retry attempt (0,1,2,...). Base doubles each attempt (200ms, 400ms,
// 800ms...), with up to +50% random jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
