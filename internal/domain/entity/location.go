package entity

import "math"

// EarthRadiusMiles is used to turn a distance into an angular radius.
const EarthRadiusMiles = 3963.0

// Location is a geocoded GeoJSON point plus its address parts.
// Coordinates are [longitude, latitude].
type Location struct {
	Type             string    `json:"type" bson:"type"`
	Coordinates      []float64 `json:"coordinates" bson:"coordinates"`
	FormattedAddress string    `json:"formattedAddress,omitempty" bson:"formattedAddress,omitempty"`
	Street           string    `json:"street,omitempty" bson:"street,omitempty"`
	City             string    `json:"city,omitempty" bson:"city,omitempty"`
	State            string    `json:"state,omitempty" bson:"state,omitempty"`
	Zipcode          string    `json:"zipcode,omitempty" bson:"zipcode,omitempty"`
	Country          string    `json:"country,omitempty" bson:"country,omitempty"`
}

func NewPoint(lng, lat float64) *Location {
	return &Location{Type: "Point", Coordinates: []float64{lng, lat}}
}

func (l *Location) Lng() float64 {
	if l == nil || len(l.Coordinates) < 2 {
		return 0
	}
	return l.Coordinates[0]
}

func (l *Location) Lat() float64 {
	if l == nil || len(l.Coordinates) < 2 {
		return 0
	}
	return l.Coordinates[1]
}

// DistanceMiles is the great-circle distance between two points.
func DistanceMiles(lng1, lat1, lng2, lat2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusMiles * math.Asin(math.Sqrt(a))
}
