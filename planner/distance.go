package planner

import (
	"context"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// DistanceSource prices the travel distance in kilometres from one position
// to another. Implementations may be asymmetric and may block on I/O.
// math.Inf(1) marks a pair with no connection.
type DistanceSource interface {
	Distance(ctx context.Context, from, to Coordinates) (float64, error)
}

// DistanceFunc adapts a plain function to DistanceSource.
type DistanceFunc func(ctx context.Context, from, to Coordinates) (float64, error)

// Distance calls f.
func (f DistanceFunc) Distance(ctx context.Context, from, to Coordinates) (float64, error) {
	return f(ctx, from, to)
}

// Haversine is the great-circle DistanceSource. It never fails.
type Haversine struct{}

// Distance returns the great-circle distance in kilometres.
func (Haversine) Distance(_ context.Context, from, to Coordinates) (float64, error) {
	return HaversineKm(from, to), nil
}

// HaversineKm returns the great-circle distance between a and b in kilometres.
func HaversineKm(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
