// Package roads models a sparse road network and answers shortest-path
// queries over it. A Network satisfies both planner.DistanceSource and
// planner.Router, so a trip can be priced and drawn along real roads instead
// of great circles.
//
// Positions that are not junctions are snapped to the nearest junction; the
// snap legs are priced as straight lines.
//
// Errors:
//
//	ErrNoJunctions      - the network has no junctions.
//	ErrDuplicateJunction - two junctions share an ID.
//	ErrUnknownJunction  - a road or query names a missing junction.
//	ErrNegativeLength   - a road has a negative or NaN length.
//	ErrUnreachable      - no road path joins the two junctions.
package roads

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/christofides/planner"
)

// Sentinel errors.
var (
	ErrNoJunctions       = errors.New("roads: no junctions")
	ErrDuplicateJunction = errors.New("roads: duplicate junction")
	ErrUnknownJunction   = errors.New("roads: unknown junction")
	ErrNegativeLength    = errors.New("roads: negative road length")
	ErrUnreachable       = errors.New("roads: no path")
)

// Junction is a named network node.
type Junction struct {
	ID          string              `json:"id" yaml:"id"`
	Coordinates planner.Coordinates `json:"coordinates" yaml:"coordinates"`
}

// Road joins two junctions.
type Road struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
	// LengthKm overrides the great-circle length when positive.
	LengthKm float64 `json:"length_km,omitempty" yaml:"length_km,omitempty"`
	// OneWay restricts travel to From→To.
	OneWay bool `json:"one_way,omitempty" yaml:"one_way,omitempty"`
}

// Layout is the serialisable form of a Network.
type Layout struct {
	Junctions []Junction `json:"junctions" yaml:"junctions"`
	Roads     []Road     `json:"roads" yaml:"roads"`
}

// Build is New(s.Junctions, s.Roads).
func (s Layout) Build() (*Network, error) {
	return New(s.Junctions, s.Roads)
}
