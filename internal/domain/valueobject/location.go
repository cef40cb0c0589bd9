package valueobject

import (
	"math"

	"github.com/oksasatya/user-account-service/internal/domain/errs"
)

const earthRadiusKm = 6371.0

// Location is a validated geographic coordinate pair.
type Location struct {
	latitude  float64
	longitude float64
}

func NewLocation(latitude, longitude float64) (Location, error) {
	if latitude < -90 || latitude > 90 {
		return Location{}, errs.Validation("latitude", "must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return Location{}, errs.Validation("longitude", "must be between -180 and 180")
	}
	return Location{latitude: latitude, longitude: longitude}, nil
}

func (l Location) Latitude() float64  { return l.latitude }
func (l Location) Longitude() float64 { return l.longitude }

// DistanceTo returns the great-circle distance to other in kilometers,
// computed with the haversine formula.
func (l Location) DistanceTo(other Location) float64 {
	lat1 := l.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - l.latitude) * math.Pi / 180
	dLon := (other.longitude - l.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func RehydrateLocation(latitude, longitude float64) Location {
	return Location{latitude: latitude, longitude: longitude}
}
