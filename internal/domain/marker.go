package domain

import (
	"cmp"
	"fmt"
	"slices"
)

// Marker is one pin on the map: every travel recorded at the same coordinates.
// Travels are ordered by year descending.
type Marker struct {
	Key       string   `json:"key"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Travels   []Travel `json:"travels"`
}

// CoordinateKey formats a coordinate pair to 8 decimal places. Two travels
// share a marker exactly when their keys are equal.
func CoordinateKey(lat, lon float64) string {
	return fmt.Sprintf("%.8f,%.8f", lat, lon)
}

// GroupMarkers collapses travels into one Marker per CoordinateKey.
// Travels without coordinates are skipped. The result depends only on the
// set of travels passed in, not on their order: members are sorted by year
// descending (ties by id), and markers by their newest year descending
// (ties by key).
func GroupMarkers(travels []Travel) []Marker {
	byKey := make(map[string]*Marker)
	for _, t := range travels {
		if !t.HasCoordinates() {
			continue
		}
		key := CoordinateKey(*t.Latitude, *t.Longitude)
		m, ok := byKey[key]
		if !ok {
			m = &Marker{Key: key}
			byKey[key] = m
		}
		m.Travels = append(m.Travels, t)
	}

	markers := make([]Marker, 0, len(byKey))
	for _, m := range byKey {
		slices.SortFunc(m.Travels, func(a, b Travel) int {
			if c := cmp.Compare(b.Year, a.Year); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
		m.Latitude = *m.Travels[0].Latitude
		m.Longitude = *m.Travels[0].Longitude
		markers = append(markers, *m)
	}

	slices.SortFunc(markers, func(a, b Marker) int {
		if c := cmp.Compare(b.Travels[0].Year, a.Travels[0].Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return markers
}
