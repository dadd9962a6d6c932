package graph

import (
	"errors"
	"fmt"
	"math"

	. "github.com/ttpr0/go-planner/util"
)

var ErrInvalidMap = errors.New("invalid map")

//*******************************************
// build map
//*******************************************

// NewMap validates points and routes and builds the lookup indices.
//
// Point ids and route ids have to be well formed and unique, every route
// endpoint has to reference a point and route lengths have to be finite and
// non-negative.
func NewMap(points []Point, routes []Route) (*Map, error) {
	m := &Map{
		points:      NewList[Point](len(points)),
		routes:      NewList[Route](len(routes)),
		point_index: NewDict[string, int32](len(points)),
		route_index: NewDict[string, int32](len(routes)),
		incidence:   NewDict[string, List[int32]](len(points)),
	}

	for _, point := range points {
		if !IsPointID(point.ID) {
			return nil, fmt.Errorf("%w: malformed point id %q", ErrInvalidMap, point.ID)
		}
		if !point.Coord.IsValid() {
			return nil, fmt.Errorf("%w: point %v has invalid coordinates (lat %v, lon %v)", ErrInvalidMap, point.ID, point.Coord.Lat(), point.Coord.Lon())
		}
		if m.point_index.ContainsKey(point.ID) {
			return nil, fmt.Errorf("%w: duplicate point id %q", ErrInvalidMap, point.ID)
		}
		m.point_index[point.ID] = int32(m.points.Length())
		m.points.Add(point)
	}

	for _, route := range routes {
		if !IsRouteID(route.ID) {
			return nil, fmt.Errorf("%w: malformed route id %q", ErrInvalidMap, route.ID)
		}
		if m.route_index.ContainsKey(route.ID) {
			return nil, fmt.Errorf("%w: duplicate route id %q", ErrInvalidMap, route.ID)
		}
		for _, endpoint := range route.Endpoints {
			if !m.point_index.ContainsKey(endpoint) {
				return nil, fmt.Errorf("%w: route %v references unknown point %q", ErrInvalidMap, route.ID, endpoint)
			}
		}
		if route.Length < 0 || math.IsNaN(route.Length) || math.IsInf(route.Length, 0) {
			return nil, fmt.Errorf("%w: route %v has invalid length %v", ErrInvalidMap, route.ID, route.Length)
		}
		index := int32(m.routes.Length())
		m.route_index[route.ID] = index
		m.routes.Add(route)

		a, b := route.Endpoints[0], route.Endpoints[1]
		m._AddIncidence(a, index)
		if b != a {
			m._AddIncidence(b, index)
		}
	}

	return m, nil
}

func NewMapFromData(data MapData) (*Map, error) {
	return NewMap(data.Points, data.Routes)
}

func (self *Map) _AddIncidence(point string, route int32) {
	routes := self.incidence[point]
	routes.Add(route)
	self.incidence[point] = routes
}
