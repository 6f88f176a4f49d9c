// README: Shared identifier and coordinate value objects.
package types

// ID is an opaque document identifier.
type ID string

// Point is an immutable geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}
