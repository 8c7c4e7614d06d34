package domain

import "time"

// Closed enums per filter dimension. Parsing drops tokens outside the enum so
// "fail-closed when the place's field is absent" stays an explicit branch.

type Outlets string

const (
	OutletsScarce  Outlets = "scarce"
	OutletsSome    Outlets = "some"
	OutletsMany    Outlets = "many"
	OutletsUnknown Outlets = "unknown"
)

type Noise string

const (
	NoiseQuiet    Noise = "quiet"
	NoiseModerate Noise = "moderate"
	NoiseLoud     Noise = "loud"
	NoiseVaries   Noise = "varies"
	NoiseUnknown  Noise = "unknown"
)

type Seating string

const (
	SeatingBar     Seating = "bar"
	SeatingTables  Seating = "tables"
	SeatingSofas   Seating = "sofas"
	SeatingOutdoor Seating = "outdoor"
)

type Price string

const (
	PriceLow     Price = "$"
	PriceMid     Price = "$$"
	PriceHigh    Price = "$$$"
	PriceUnknown Price = "unknown"
)

type Bathroom string

const (
	BathroomYes       Bathroom = "yes"
	BathroomCustomers Bathroom = "customers"
	BathroomNo        Bathroom = "no"
	BathroomUnknown   Bathroom = "unknown"
)

type Parking string

const (
	ParkingStreet Parking = "street"
	ParkingLot    Parking = "lot"
	ParkingGarage Parking = "garage"
	ParkingNone   Parking = "none"
)

// HoursRange is one open/close pair in local "HH:MM" 24h wall-clock time.
// Close at or before Open means the range spans midnight.
type HoursRange struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type Wifi struct {
	Rating           int      `json:"rating"` // 1..5
	Free             bool     `json:"free"`
	LastTestMbpsDown *float64 `json:"lastTestMbpsDown,omitempty"`
	LastTestAt       *string  `json:"lastTestAt,omitempty"`
}

type Accessibility struct {
	StepFree    *bool    `json:"stepFree,omitempty"`
	DoorWidthIn *float64 `json:"doorWidthIn,omitempty"`
}

// Place is an immutable input record. Weekday keys in Hours are lowercase
// English day names ("sunday".."saturday"). LastVerifiedAt stays a raw
// ISO-8601 string: an unparsable value must degrade to a neutral freshness
// factor, never error.
type Place struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name,omitempty"`
	Lat            float64                 `json:"lat"`
	Lon            float64                 `json:"lon"`
	Address        *string                 `json:"address,omitempty"`
	Neighborhood   *string                 `json:"neighborhood,omitempty"`
	Hours          map[string][]HoursRange `json:"hours,omitempty"`
	Wifi           *Wifi                   `json:"wifi,omitempty"`
	Outlets        Outlets                 `json:"outlets,omitempty"`
	Noise          Noise                   `json:"noise,omitempty"`
	Seating        []Seating               `json:"seating,omitempty"`
	CoffeePrice    Price                   `json:"coffeePrice,omitempty"`
	Bathroom       Bathroom                `json:"bathroom,omitempty"`
	Parking        []Parking               `json:"parking,omitempty"`
	Accessibility  *Accessibility          `json:"accessibility,omitempty"`
	Tags           []string                `json:"tags,omitempty"`
	LastVerifiedAt *string                 `json:"lastVerifiedAt,omitempty"`
	Score          *int                    `json:"score,omitempty"`
	Source         string                  `json:"source,omitempty"`
}

// Result is a Place enriched by the search pipeline.
type Result struct {
	Place
	IsOpen     bool       `json:"isOpen"`
	ClosesAt   *time.Time `json:"closesAt"`
	DistanceKm *float64   `json:"distanceKm,omitempty"`
}

type SearchPage struct {
	Items    []Result `json:"items"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}
