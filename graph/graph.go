package graph

import (
	"iter"

	. "github.com/ttpr0/go-planner/util"
)

//*******************************************
// graph interface
//******************************************

// IGraph gives read-only access to a loaded map.
//
// Implementations must not change after construction, so one instance can be
// shared by concurrent searches.
type IGraph interface {
	PointCount() int
	RouteCount() int
	IsEmpty() bool
	GetPoint(id string) (Point, bool)
	GetRoute(id string) (Route, bool)
	// Iterates the routes touching point in load order, a self loop is yielded once.
	IncidentRoutes(point string) iter.Seq[Route]
	Points() []Point
	Routes() []Route
}

//*******************************************
// map
//******************************************

var _ IGraph = &Map{}

type Map struct {
	points List[Point]
	routes List[Route]

	point_index Dict[string, int32]
	route_index Dict[string, int32]
	incidence   Dict[string, List[int32]]
}

func (self *Map) PointCount() int {
	return self.points.Length()
}
func (self *Map) RouteCount() int {
	return self.routes.Length()
}
func (self *Map) IsEmpty() bool {
	return self.points.Length() == 0
}
func (self *Map) GetPoint(id string) (Point, bool) {
	index, ok := self.point_index[id]
	if !ok {
		return Point{}, false
	}
	return self.points[index], true
}
func (self *Map) GetRoute(id string) (Route, bool) {
	index, ok := self.route_index[id]
	if !ok {
		return Route{}, false
	}
	return self.routes[index], true
}
func (self *Map) IncidentRoutes(point string) iter.Seq[Route] {
	return func(yield func(Route) bool) {
		for _, index := range self.incidence[point] {
			if !yield(self.routes[index]) {
				return
			}
		}
	}
}
func (self *Map) Points() []Point {
	return self.points.Copy()
}
func (self *Map) Routes() []Route {
	return self.routes.Copy()
}

func (self *Map) Export() MapData {
	return MapData{
		Points: self.Points(),
		Routes: self.Routes(),
	}
}
