package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinLatitude and MaxLatitude bound a valid latitude in degrees.
	MinLatitude = -90.0
	MaxLatitude = 90.0

	// MinLongitude and MaxLongitude bound a valid longitude in degrees.
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// EarthRadiusKm is the IUGG mean Earth radius used by DistanceTo.
	EarthRadiusKm = 6371.0088
)

// ErrGeoPointIsNotConstructed is returned when a zero-value GeoPoint is used.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint or NewOptionalGeoPoint constructors")

// GeoPoint is an immutable WGS84 coordinate pair in degrees.
//
// The zero value is invalid: (0,0) is a real place in the Gulf of Guinea, so
// "unknown location" is expressed with a nil *GeoPoint, never with a zero value.
//
// Example:
//
//	home, err := kernel.NewGeoPoint(40.7128, -74.0060)
//	if err != nil {
//	    // out of range or NaN
//	}
//	fmt.Println(home) // GeoPoint(40.712800,-74.006000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint validates both coordinates and returns a GeoPoint.
//
// Parameters:
//   - lat: latitude in degrees, within [MinLatitude..MaxLatitude]
//   - lng: longitude in degrees, within [MinLongitude..MaxLongitude]
//
// Returns:
//   - GeoPoint: a valid point
//   - error: the joined range errors for every invalid coordinate
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// NewOptionalGeoPoint builds a point from nullable inputs, as they arrive from
// intake forms and presence pings.
//
// Both nil yields (nil, nil): the location is unknown. Exactly one nil is a
// validation error because a half-known coordinate cannot be matched against.
func NewOptionalGeoPoint(lat, lng *float64) (*GeoPoint, error) {
	switch {
	case lat == nil && lng == nil:
		return nil, nil //nolint:nilnil // unknown location is a valid state
	case lat == nil || lng == nil:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"location", errors.New("lat and lng must be provided together"))
	}

	p, err := NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate reports whether the point was built by a constructor.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lng)
}

// IsEqual compares two constructed points coordinate by coordinate.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// DistanceTo returns the great-circle distance in kilometres using the
// haversine formula on a sphere of radius EarthRadiusKm.
//
// The result is symmetric (a.DistanceTo(b) == b.DistanceTo(a)) and monotonic in
// the true angular separation, which is what proximity ranking relies on.
// Both points must be constructed.
//
// Example:
//
//	job, _ := kernel.NewGeoPoint(40.0, -73.0)
//	cleaner, _ := kernel.NewGeoPoint(40.1, -73.0)
//	km, _ := job.DistanceTo(cleaner) // ~11.12
func (p GeoPoint) DistanceTo(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	phi1 := toRadians(p.lat)
	phi2 := toRadians(other.lat)
	dPhi := toRadians(other.lat - p.lat)
	dLambda := toRadians(other.lng - p.lng)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	// Rounding can push a marginally above 1 for antipodal points.
	a = math.Min(1, a)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a)), nil
}

func (p *GeoPoint) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, MinLatitude, MaxLatitude)
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("lng", lng, MinLongitude, MaxLongitude)
	}

	p.lng = lng
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
