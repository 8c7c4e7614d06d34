package domain

import "context"

// PlaceProvider is the external place-data collaborator. A failing List must
// never fail a search request: callers degrade to whatever places they
// already have and log for operators.
type PlaceProvider interface {
	List(ctx context.Context) ([]Place, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
