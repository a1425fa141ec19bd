package planner

import (
	"context"

	"github.com/pkg/errors"

	"github.com/katalvlaran/christofides/tsp"
)

// Request bundles the inputs of Plan.
type Request struct {
	Places []Place
	Fuel   Fuel

	// Source prices pairs; nil means Haversine.
	Source DistanceSource
	// Router draws legs; nil means straight lines.
	Router Router

	// Solve forwards options to tsp.Solve.
	Solve []tsp.Option
	// Enrich forwards options to Enrich.
	Enrich []EnrichOption
}

// Itinerary is a priced, ordered visit of every place.
type Itinerary struct {
	Stops      []Place     `json:"stops" yaml:"stops" msgpack:"stops"`
	Legs       []Leg       `json:"legs" yaml:"legs" msgpack:"legs"`
	Cost       float64     `json:"cost" yaml:"cost" msgpack:"cost"`
	DistanceKm float64     `json:"distance_km" yaml:"distance_km" msgpack:"distance_km"`
	Result     *tsp.Result `json:"result" yaml:"result" msgpack:"result"`
}

// Plan builds the graph, solves it and enriches the resulting cycle.
// Stops lists the places in visiting order, closed at the start.
func Plan(ctx context.Context, req Request) (*Itinerary, error) {
	g, err := BuildGraph(ctx, req.Places, req.Source, req.Fuel)
	if err != nil {
		return nil, err
	}

	res, err := tsp.Solve(g, req.Solve...)
	if err != nil {
		return nil, errors.WithMessage(err, "planner: solve")
	}

	legs, err := Enrich(ctx, req.Places, res.Cycle, req.Router, req.Enrich...)
	if err != nil {
		return nil, err
	}

	stops := make([]Place, len(res.Cycle))
	for i, v := range res.Cycle {
		stops[i] = req.Places[v]
	}

	return &Itinerary{
		Stops:      stops,
		Legs:       legs,
		Cost:       res.Cost,
		DistanceKm: res.Cost / req.Fuel.PerKm(),
		Result:     res,
	}, nil
}
