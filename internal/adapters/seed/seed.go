// Package seed holds the baseline place collection baked into the binary.
// It is always available, so a provider outage degrades a request rather
// than failing it.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/cmkladzyk/rwepcafenew/internal/domain"
)

//go:embed places.json
var placesJSON []byte

// Places decodes the embedded collection. Records without an explicit source
// are tagged "seed".
func Places() ([]domain.Place, error) {
	var places []domain.Place
	if err := json.Unmarshal(placesJSON, &places); err != nil {
		return nil, fmt.Errorf("decode embedded places: %w", err)
	}
	for i := range places {
		if places[i].Source == "" {
			places[i].Source = "seed"
		}
	}
	return places, nil
}
