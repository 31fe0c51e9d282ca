package models

// Coordinates is a geolocation sample supplied by the caller, typically the
// last fix the rendering layer captured for the current user.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
