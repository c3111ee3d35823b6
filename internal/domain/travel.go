// Package domain contains the core data types for the travel log application.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler, geocode).
package domain

import "time"

// Travel is a single recorded trip: a city and country visited in a given year.
// Description, Latitude and Longitude are nil when not recorded. Latitude and
// Longitude are always both set or both nil.
type Travel struct {
	ID          int64     `json:"id"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Year        int       `json:"year"`
	Description *string   `json:"description"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	CreatedAt   time.Time `json:"-"`
}

// HasCoordinates reports whether the travel can be placed on the map.
func (t Travel) HasCoordinates() bool {
	return t.Latitude != nil && t.Longitude != nil
}

// TravelInput is the raw, untrusted form submission for a travel.
// Every field is the string exactly as the browser sent it; the service
// trims and validates it before anything reaches storage.
type TravelInput struct {
	City        string
	Country     string
	Year        string
	Description string
	Latitude    string
	Longitude   string
}

// Coordinates is a latitude/longitude pair returned by the geocoder.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
