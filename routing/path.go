package routing

import (
	"fmt"
	"slices"

	"github.com/ttpr0/go-planner/geo"
	"github.com/ttpr0/go-planner/graph"
	. "github.com/ttpr0/go-planner/util"
)

//*******************************************
// path
//*******************************************

// PathStep is a route and the point it arrives at, Route is empty for the origin.
type PathStep struct {
	Route string `json:"route"`
	Point string `json:"point"`
}

type Path []PathStep

func (self Path) IsEmpty() bool {
	return len(self) == 0
}

func (self Path) Origin() string {
	if len(self) == 0 {
		return ""
	}
	return self[0].Point
}

func (self Path) Destination() string {
	if len(self) == 0 {
		return ""
	}
	return self[len(self)-1].Point
}

func (self Path) Points() []string {
	points := make([]string, len(self))
	for i, step := range self {
		points[i] = step.Point
	}
	return points
}

// Sums the lengths of the traversed routes.
func (self Path) Length(g graph.IGraph) float64 {
	length := 0.0
	for _, step := range self {
		if step.Route == "" {
			continue
		}
		route, _ := g.GetRoute(step.Route)
		length += route.Length
	}
	return length
}

// Returns the coordinates of the visited points.
func (self Path) GetGeometry(g graph.IGraph) geo.CoordArray {
	coords := make(geo.CoordArray, 0, len(self))
	for _, step := range self {
		point, ok := g.GetPoint(step.Point)
		if !ok {
			continue
		}
		coords = append(coords, point.Coord)
	}
	return coords
}

//*******************************************
// reconstruction
//*******************************************

// ReconstructPath walks back from last through the closed nodes.
func ReconstructPath(g graph.IGraph, closed Dict[string, SearchNode], last SearchNode) (Path, error) {
	steps := NewList[PathStep](10)
	curr := last
	for curr.Route != "" {
		if steps.Length() > closed.Length() {
			return nil, fmt.Errorf("%w: predecessor chain of %v does not reach the origin", ErrInconsistentState, last.Point)
		}
		steps.Add(PathStep{Route: curr.Route, Point: curr.Point})
		route, ok := g.GetRoute(curr.Route)
		if !ok {
			return nil, fmt.Errorf("%w: unknown route %v", ErrInconsistentState, curr.Route)
		}
		prev := route.OtherEndpoint(curr.Point)
		node, ok := closed[prev]
		if !ok {
			return nil, fmt.Errorf("%w: predecessor %v of %v is not closed", ErrInconsistentState, prev, curr.Point)
		}
		curr = node
	}
	steps.Add(PathStep{Route: "", Point: curr.Point})
	slices.Reverse(steps)
	return Path(steps), nil
}
