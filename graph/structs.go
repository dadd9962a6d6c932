package graph

import (
	"github.com/ttpr0/go-planner/geo"
)

//*******************************************
// map structs
//*******************************************

type Point struct {
	ID    string
	Name  string
	Coord geo.Coord
}

// Route is an undirected road between its two endpoints, length in km.
type Route struct {
	ID        string
	Name      string
	Endpoints [2]string
	Length    float64
}

// Returns the endpoint that differs from point.
//
// For a self loop this is point itself.
func (self Route) OtherEndpoint(point string) string {
	if self.Endpoints[0] != point {
		return self.Endpoints[0]
	}
	return self.Endpoints[1]
}

func (self Route) Touches(point string) bool {
	return self.Endpoints[0] == point || self.Endpoints[1] == point
}

// MapData is the plain (serializable) content of a map in load order.
type MapData struct {
	Points []Point
	Routes []Route
}

//*******************************************
// identifiers
//*******************************************

const (
	POINT_PREFIX = '#'
	ROUTE_PREFIX = '&'
)

func IsPointID(id string) bool {
	return len(id) >= 2 && id[0] == POINT_PREFIX
}

func IsRouteID(id string) bool {
	return len(id) >= 2 && id[0] == ROUTE_PREFIX
}
