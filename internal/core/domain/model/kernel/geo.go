package kernel

import (
	"errors"
	"fmt"
	"math"

	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

const (
	// GeoLatMin is the minimum valid latitude in degrees.
	GeoLatMin = -90.0
	// GeoLatMax is the maximum valid latitude in degrees.
	GeoLatMax = 90.0
	// GeoLngMin is the minimum valid longitude in degrees.
	GeoLngMin = -180.0
	// GeoLngMax is the maximum valid longitude in degrees.
	GeoLngMax = 180.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic coordinate pair in decimal degrees.
// GeoPoint is an immutable value object that guarantees its latitude and
// longitude are within valid bounds. The zero value is invalid and fails
// validation - use NewGeoPoint to create instances.
//
// Example:
//
//	pickup, err := kernel.NewGeoPoint(6.5244, 3.3792) // Lagos
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Printf("pickup: %s", pickup) // Output: GeoPoint(6.524400,3.379200)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given latitude and longitude in
// decimal degrees. Latitude must lie in [-90, 90] and longitude in
// [-180, 180]; out-of-range values are rejected with a ValueIsOutOfRangeError.
//
// Example:
//
//	point, err := NewGeoPoint(9.0765, 7.3986) // Abuja
//	if err != nil {
//	    return fmt.Errorf("invalid coordinate: %w", err)
//	}
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was created through NewGeoPoint.
// The zero value fails with ErrGeoPointIsNotConstructed.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in decimal degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// String returns "GeoPoint(lat,lng)" with six decimal places.
// Implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lng)
}

// IsEqual compares two geo points for coordinate equality.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// DistanceKm calculates the great-circle distance to another point using the
// haversine formula with a mean Earth radius of 6371 km. The result is rounded
// to two decimal places. The calculation is deterministic, side-effect free,
// and symmetric: a.DistanceKm(b) equals b.DistanceKm(a), and the distance from
// a point to itself is zero.
//
// Both points must be properly constructed for the calculation to succeed.
//
// Example:
//
//	lagos, _ := NewGeoPoint(6.5244, 3.3792)
//	ibadan, _ := NewGeoPoint(7.3775, 3.9470)
//
//	km, err := lagos.DistanceKm(ibadan)
//	// km ≈ 116.76, err = nil
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := degToRad(p.lat)
	lat2 := degToRad(other.lat)
	dLat := degToRad(other.lat - p.lat)
	dLng := degToRad(other.lng - p.lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return roundKm(earthRadiusKm * c), nil
}

// setLat sets the latitude with validation.
// Pointer receiver is used intentionally for self-encapsulated validation
// during construction, while read methods keep value receivers.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoLatMin || lat > GeoLatMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, GeoLatMin, GeoLatMax)
	}

	p.lat = lat
	return nil
}

// setLng sets the longitude with validation.
// Pointer receiver is used intentionally for self-encapsulated validation
// during construction, while read methods keep value receivers.
func (p *GeoPoint) setLng(lng float64) error {
	if lng < GeoLngMin || lng > GeoLngMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, GeoLngMin, GeoLngMax)
	}

	p.lng = lng
	return nil
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
