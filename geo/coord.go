package geo

import (
	"math"

	"github.com/paulmach/orb"
)

//*******************************************
// coordinates
//*******************************************

// Coord stores longitude and latitude in degrees (in that order).
type Coord [2]float64

func NewCoord(lat, lon float64) Coord {
	return Coord{lon, lat}
}

func (self Coord) Lon() float64 {
	return self[0]
}
func (self Coord) Lat() float64 {
	return self[1]
}

// Latitude has to be in [-90, 90], longitude in (-180, 180].
func (self Coord) IsValid() bool {
	lon, lat := self[0], self[1]
	if math.IsNaN(lon) || math.IsNaN(lat) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon > -180 && lon <= 180
}

func (self Coord) ToPoint() orb.Point {
	return orb.Point{self[0], self[1]}
}

func FromPoint(point orb.Point) Coord {
	return Coord{point[0], point[1]}
}

type CoordArray []Coord

func (self CoordArray) ToLineString() orb.LineString {
	line := make(orb.LineString, len(self))
	for i, c := range self {
		line[i] = c.ToPoint()
	}
	return line
}
