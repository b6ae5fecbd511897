package models

import "fmt"

type Coordinate struct {
	Latitude  float64 `json:"latitude" example:"40.7128"`
	Longitude float64 `json:"longitude" example:"-74.006"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// LocationSource tells which resolver step produced a ResolvedLocation.
type LocationSource string

const (
	SourceCoordinates      LocationSource = "coordinates"
	SourcePrimaryGeocoder  LocationSource = "primary_geocoder"
	SourceFallbackGeocoder LocationSource = "fallback_geocoder"
)

type ResolvedLocation struct {
	DisplayName string         `json:"display_name" example:"Berlin, State of Berlin, Germany"`
	Latitude    float64        `json:"latitude" example:"52.52437"`
	Longitude   float64        `json:"longitude" example:"13.41053"`
	Source      LocationSource `json:"source_provider" example:"primary_geocoder"`
}

func (l ResolvedLocation) Coordinate() Coordinate {
	return Coordinate{Latitude: l.Latitude, Longitude: l.Longitude}
}
