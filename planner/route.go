package planner

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/christofides/tsp"
)

// Router returns the drivable path between two positions as a polyline that
// starts at from and ends at to.
type Router interface {
	Route(ctx context.Context, from, to Coordinates) ([]Coordinates, error)
}

// RouterFunc adapts a plain function to Router.
type RouterFunc func(ctx context.Context, from, to Coordinates) ([]Coordinates, error)

// Route calls f.
func (f RouterFunc) Route(ctx context.Context, from, to Coordinates) ([]Coordinates, error) {
	return f(ctx, from, to)
}

// Leg is one hop of a tour.
type Leg struct {
	From     int           `json:"from" yaml:"from" msgpack:"from"`
	To       int           `json:"to" yaml:"to" msgpack:"to"`
	Path     []Coordinates `json:"path" yaml:"path" msgpack:"path"`
	Fallback bool          `json:"fallback,omitempty" yaml:"fallback,omitempty" msgpack:"fallback,omitempty"`
}

// EnrichOption configures Enrich.
type EnrichOption func(*enrichConfig)

type enrichConfig struct {
	log logrus.FieldLogger
}

// WithEnrichLogger routes fallback warnings to l. Nil is ignored.
func WithEnrichLogger(l logrus.FieldLogger) EnrichOption {
	return func(c *enrichConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Enrich returns one Leg per consecutive pair of cycle. Each leg asks r for
// a path; when r is nil, fails, or returns an empty path, the leg becomes
// the straight segment [from, to] with Fallback set. Context cancellation is
// the only error: a cancelled ctx aborts the whole enrichment.
//
// cycle holds indices into places, as produced by tsp.Solve.
func Enrich(ctx context.Context, places []Place, cycle []int, r Router, opts ...EnrichOption) ([]Leg, error) {
	cfg := enrichConfig{log: discardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	legs := make([]Leg, 0, max(len(cycle)-1, 0))
	var (
		i, u, v int
		path    []Coordinates
		err     error
	)
	for i = 0; i+1 < len(cycle); i++ {
		u, v = cycle[i], cycle[i+1]
		if u < 0 || u >= len(places) || v < 0 || v >= len(places) {
			return nil, errors.Wrapf(tsp.ErrInvalidCycleEdge, "leg %d: (%d,%d) with %d places", i, u, v, len(places))
		}
		if err = ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}

		leg := Leg{From: u, To: v}
		path = nil
		if r != nil {
			path, err = r.Route(ctx, places[u].Coordinates, places[v].Coordinates)
			if err != nil && ctx.Err() != nil {
				return nil, errors.WithStack(ctx.Err())
			}
			if err != nil || len(path) == 0 {
				cfg.log.WithFields(logrus.Fields{
					"from": places[u].Name,
					"to":   places[v].Name,
				}).WithError(err).Warn("route unavailable, using straight line")
				path = nil
			}
		}
		if path == nil {
			leg.Fallback = true
			path = []Coordinates{places[u].Coordinates, places[v].Coordinates}
		}
		leg.Path = path
		legs = append(legs, leg)
	}

	return legs, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
