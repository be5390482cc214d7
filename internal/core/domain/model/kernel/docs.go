// Package kernel provides the value objects shared by the dispatch domain model.
//
// The package includes:
//   - UUID: identifiers, random or derived from a natural key
//   - GeoPoint: a WGS84 coordinate with haversine distance
//   - Phone: a normalized contact number
//
// All value objects are immutable and carry a constructor guard, so a zero
// value declared by accident fails validation instead of passing as data.
package kernel
