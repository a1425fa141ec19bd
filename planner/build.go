package planner

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/christofides/graph"
)

// BuildGraph prices every ordered pair of places with src and fuel and
// returns the resulting graph. Vertex i is places[i]; its label is the place
// name and X/Y carry longitude/latitude.
//
// A nil src means Haversine. Distinct places at the same position cost zero,
// which the solver treats as "no direct edge"; they remain reachable through
// any third place.
//
// Complexity: O(n²) distance lookups.
func BuildGraph(ctx context.Context, places []Place, src DistanceSource, fuel Fuel) (*graph.Graph, error) {
	if err := ValidatePlaces(places, fuel); err != nil {
		return nil, err
	}
	if src == nil {
		src = Haversine{}
	}

	n := len(places)
	rows := make([][]float64, n)
	var (
		i, j int
		km   float64
		err  error
	)
	for i = 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}
		rows[i] = make([]float64, n)
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			km, err = src.Distance(ctx, places[i].Coordinates, places[j].Coordinates)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, errors.WithStack(ctxErr)
				}
				return nil, errors.Wrapf(ErrDistanceFailed, "%s -> %s: %v", places[i].Name, places[j].Name, err)
			}
			if math.IsNaN(km) || km < 0 {
				return nil, errors.Wrapf(ErrDistanceFailed, "%s -> %s: bad distance %g", places[i].Name, places[j].Name, km)
			}
			rows[i][j] = fuel.Cost(km)
		}
	}

	return graph.New(n, rows, graph.WithVertices(Vertices(places)))
}

// Vertices maps places to graph vertices: X is longitude, Y latitude and
// the label is the place name.
func Vertices(places []Place) []graph.Vertex {
	vs := make([]graph.Vertex, len(places))
	for i, p := range places {
		vs[i] = graph.Vertex{ID: i, X: p.Coordinates.Lon, Y: p.Coordinates.Lat, Label: p.Name}
	}

	return vs
}
