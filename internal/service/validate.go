package service

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkordes/travel-log/internal/domain"
)

const (
	maxNameLength = 255
	minYear       = 1000
	maxYear       = 9999
)

// ValidateTravel trims every field of in and checks it against the travel
// rules. All violated rules are reported together. When the returned slice
// is empty the returned Travel is ready to be written; it never carries an
// ID or CreatedAt.
//
// Rules:
//   - city and country are required, at most 255 characters after trimming.
//   - city, country and description must be valid UTF-8 without NUL bytes.
//   - year is required and must be a base-10 integer in [1000, 9999].
//   - latitude, if given, must be a plain decimal number in [-90, 90].
//   - longitude, if given, must be a number in [-180, 180].
//   - latitude and longitude must be given together.
//   - an empty description is stored as NULL.
func ValidateTravel(in domain.TravelInput) (domain.Travel, []domain.FieldError) {
	var (
		out  domain.Travel
		errs []domain.FieldError
	)
	fail := func(field, msg string) {
		errs = append(errs, domain.FieldError{Field: field, Message: msg})
	}

	out.City = strings.TrimSpace(in.City)
	switch {
	case out.City == "":
		fail("city", "City is required.")
	case !storableText(out.City):
		fail("city", "City contains invalid characters.")
	case utf8.RuneCountInString(out.City) > maxNameLength:
		fail("city", "City name is too long (max 255 characters).")
	}

	out.Country = strings.TrimSpace(in.Country)
	switch {
	case out.Country == "":
		fail("country", "Country is required.")
	case !storableText(out.Country):
		fail("country", "Country contains invalid characters.")
	case utf8.RuneCountInString(out.Country) > maxNameLength:
		fail("country", "Country name is too long (max 255 characters).")
	}

	year := strings.TrimSpace(in.Year)
	if year == "" {
		fail("year", "Year is required.")
	} else if n, err := strconv.Atoi(year); err != nil {
		fail("year", "Year must be a number.")
	} else if n < minYear || n > maxYear {
		fail("year", "Year must be a valid 4-digit year.")
	} else {
		out.Year = n
	}

	if d := strings.TrimSpace(in.Description); !storableText(d) {
		fail("description", "Description contains invalid characters.")
	} else if d != "" {
		out.Description = &d
	}

	lat, latGiven, latOK := parseCoordinate(in.Latitude, 90)
	if latGiven && !latOK {
		fail("latitude", "Latitude must be a number between -90 and 90.")
	}
	lon, lonGiven, lonOK := parseCoordinate(in.Longitude, 180)
	if lonGiven && !lonOK {
		fail("longitude", "Longitude must be a number between -180 and 180.")
	}
	if latGiven != lonGiven {
		fail("coordinates", "Latitude and longitude must be provided together.")
	}
	if latOK && lonOK {
		out.Latitude = &lat
		out.Longitude = &lon
	}

	return out, errs
}

// storableText reports whether s can be stored in a Postgres UTF8 text column.
func storableText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// decimalChars is everything a plain decimal coordinate may contain.
// ParseFloat also accepts hex floats, underscores, Inf and NaN.
const decimalChars = "0123456789+-.eE"

// parseCoordinate reports whether raw was given at all and whether it is a
// finite decimal number within [-limit, limit].
func parseCoordinate(raw string, limit float64) (v float64, given, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, false
	}
	if strings.ContainsFunc(raw, func(r rune) bool { return !strings.ContainsRune(decimalChars, r) }) {
		return 0, true, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < -limit || v > limit {
		return 0, true, false
	}
	return v, true, true
}
