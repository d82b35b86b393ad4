// Package query implements the plan query engine: region and rating-band
// filtering, column sorting and region-scoped summary metrics.
//
// Every function here is pure. Callers re-run them on each change of view
// state; nothing is cached and the input records are never mutated.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
)

// Band is a rating-band floor. BandAll disables the band filter; floors
// 2 through 5 select floor <= overall < floor+1.
type Band int

// Supported bands.
const (
	BandAll Band = 0
	Band2   Band = 2
	Band3   Band = 3
	Band4   Band = 4
	Band5   Band = 5
)

// Bands lists the selectable bands in the order the dashboard offers them.
func Bands() []Band {
	return []Band{BandAll, Band5, Band4, Band3, Band2}
}

// Valid reports whether b is BandAll or a floor in [2,5].
func (b Band) Valid() bool {
	return b == BandAll || (b >= Band2 && b <= Band5)
}

// Contains reports whether rating falls in the half-open band [b, b+1).
// BandAll contains every rating.
func (b Band) Contains(rating float64) bool {
	if b == BandAll {
		return true
	}
	floor := float64(b)
	return rating >= floor && rating < floor+1
}

// String returns the wire form: "all" or the floor digit.
func (b Band) String() string {
	if b == BandAll {
		return "all"
	}
	return strconv.Itoa(int(b))
}

// Label returns the option text shown by the band selector.
func (b Band) Label() string {
	switch b {
	case BandAll:
		return "All Ratings"
	case Band5:
		return "5 Stars"
	case Band2:
		return "Below 3 Stars"
	}
	return fmt.Sprintf("%d-%d.9 Stars", int(b), int(b))
}

// MarshalText encodes the band as "all" or its floor.
func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText accepts the forms produced by MarshalText.
func (b *Band) UnmarshalText(text []byte) error {
	v, err := ParseBand(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseBand parses "all" (or empty) and the floors "2".."5".
func ParseBand(s string) (Band, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == "all" {
		return BandAll, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || !Band(n).Valid() || n == 0 {
		return BandAll, fmt.Errorf("%w: rating band %q", ErrInvalidQuery, s)
	}
	return Band(n), nil
}

// Direction is the sort order of the plan table.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// ParseDirection parses "asc"/"ascending" and "desc"/"descending".
// Empty input yields Descending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "descending":
		return Descending, nil
	case "asc", "ascending":
		return Ascending, nil
	}
	return "", fmt.Errorf("%w: direction %q", ErrInvalidQuery, s)
}

// Query holds the user-selected view parameters.
type Query struct {
	Region    plan.Region `json:"region,omitempty"`
	Band      Band        `json:"rating"`
	SortKey   plan.Field  `json:"sort"`
	Direction Direction   `json:"dir"`
}

// Default returns the initial query: no filters, overall rating descending.
func Default() Query {
	return Query{
		Region:    plan.RegionNone,
		Band:      BandAll,
		SortKey:   plan.FieldOverallRating,
		Direction: Descending,
	}
}

// Validate checks that every parameter is drawn from its enumeration.
func (q Query) Validate() error {
	if q.Region != plan.RegionNone && !q.Region.Valid() {
		return fmt.Errorf("%w: region %q", ErrInvalidQuery, q.Region)
	}
	if !q.Band.Valid() {
		return fmt.Errorf("%w: rating band %d", ErrInvalidQuery, int(q.Band))
	}
	if !q.SortKey.Valid() {
		return fmt.Errorf("%w: sort key %q", ErrInvalidQuery, q.SortKey)
	}
	if !q.Direction.Valid() {
		return fmt.Errorf("%w: direction %q", ErrInvalidQuery, q.Direction)
	}
	return nil
}

// Parse builds a Query from raw boundary strings. Empty strings fall back to
// the defaults of Default.
func Parse(region, band, sortKey, direction string) (Query, error) {
	q := Default()

	r, err := plan.ParseRegion(region)
	if err != nil {
		return Query{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	q.Region = r

	if q.Band, err = ParseBand(band); err != nil {
		return Query{}, err
	}

	if strings.TrimSpace(sortKey) != "" {
		f, err := plan.ParseField(sortKey)
		if err != nil {
			return Query{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		}
		q.SortKey = f
	}

	if q.Direction, err = ParseDirection(direction); err != nil {
		return Query{}, err
	}
	return q, nil
}
