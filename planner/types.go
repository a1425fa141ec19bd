// Package planner turns a list of geographic places into the weighted graph
// consumed by the tour solver and decorates a solved cycle with leg geometry.
//
// The planner owns everything the solver deliberately ignores: coordinates,
// distances, fuel pricing and routing services. Distances and paths come from
// pluggable collaborators (DistanceSource, Router); the package ships a
// great-circle DistanceSource and uses straight lines whenever no Router is
// available or a Router fails.
//
// Errors:
//
//	ErrNoPlaces         - the place list is empty.
//	ErrInvalidPlace     - a place or the fuel profile fails validation.
//	ErrDistanceFailed   - the DistanceSource returned an error or a bad value.
package planner

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Sentinel errors.
var (
	// ErrNoPlaces indicates an empty place list.
	ErrNoPlaces = errors.New("planner: no places")

	// ErrInvalidPlace indicates a place or fuel profile failing validation.
	ErrInvalidPlace = errors.New("planner: invalid place")

	// ErrDistanceFailed indicates the distance source could not price a pair.
	ErrDistanceFailed = errors.New("planner: distance lookup failed")
)

// Coordinates is a WGS84 position in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat" msgpack:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" yaml:"lon" msgpack:"lon" validate:"gte=-180,lte=180"`
}

// Place is a named stop.
type Place struct {
	Name        string      `json:"name" yaml:"name" msgpack:"name" validate:"required"`
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates" msgpack:"coordinates"`
}

// Fuel prices a kilometre of driving.
type Fuel struct {
	// ConsumptionL100 is litres burned per 100 km.
	ConsumptionL100 float64 `json:"consumption_l100" yaml:"consumption_l100" msgpack:"consumption_l100" validate:"gt=0"`
	// PricePerLitre is the currency cost of one litre.
	PricePerLitre float64 `json:"price_per_litre" yaml:"price_per_litre" msgpack:"price_per_litre" validate:"gt=0"`
}

// PerKm returns the currency cost of one kilometre.
func (f Fuel) PerKm() float64 {
	return f.ConsumptionL100 / 100 * f.PricePerLitre
}

// Cost converts a distance in kilometres into currency.
func (f Fuel) Cost(km float64) float64 {
	return km * f.PerKm()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// ValidatePlaces checks every place and the fuel profile.
func ValidatePlaces(places []Place, fuel Fuel) error {
	if len(places) == 0 {
		return ErrNoPlaces
	}
	for i := range places {
		if err := validate.Struct(&places[i]); err != nil {
			return errors.Wrapf(ErrInvalidPlace, "place %d (%q): %v", i, places[i].Name, err)
		}
	}
	if err := validate.Struct(&fuel); err != nil {
		return errors.Wrapf(ErrInvalidPlace, "fuel: %v", err)
	}

	return nil
}
