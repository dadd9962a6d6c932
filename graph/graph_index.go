package graph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
	"github.com/ttpr0/go-planner/geo"
)

// *******************************************
// graph index interface
// *******************************************

type IGraphIndex interface {
	// Returns the point nearest to coord within max_dist km, a negative
	// max_dist disables the limit.
	GetClosestPoint(coord geo.Coord, max_dist float64) (Point, bool)
}

//*******************************************
// point index
//*******************************************

var _ IGraphIndex = &PointIndex{}

type PointIndex struct {
	tree *quadtree.Quadtree
}

type _IndexedPoint struct {
	point Point
}

func (self _IndexedPoint) Point() orb.Point {
	return self.point.Coord.ToPoint()
}

func NewPointIndex(g IGraph) *PointIndex {
	tree := quadtree.New(orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}})
	for _, p := range g.Points() {
		tree.Add(_IndexedPoint{p})
	}
	return &PointIndex{
		tree: tree,
	}
}

// Nearness is measured in degrees, the limit in great-circle km.
func (self *PointIndex) GetClosestPoint(coord geo.Coord, max_dist float64) (Point, bool) {
	if !coord.IsValid() {
		return Point{}, false
	}
	found := self.tree.Find(coord.ToPoint())
	if found == nil {
		return Point{}, false
	}
	p := found.(_IndexedPoint).point
	if max_dist >= 0 && geo.Distance(coord, p.Coord) > max_dist {
		return Point{}, false
	}
	return p, true
}
