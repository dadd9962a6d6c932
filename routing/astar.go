package routing

import (
	"fmt"

	"github.com/ttpr0/go-planner/geo"
	"github.com/ttpr0/go-planner/graph"
	. "github.com/ttpr0/go-planner/util"
)

// Heuristic estimates the remaining length in km between two coordinates.
type Heuristic func(from, to geo.Coord) float64

func ZeroHeuristic(from, to geo.Coord) float64 {
	return 0
}

type Options struct {
	Heuristic Heuristic
}

type Option func(*Options)

// WithHeuristic replaces the great-circle estimate.
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

//*******************************************
// a-star
//*******************************************

var _ IShortestPath = &AStar{}

type AStar struct {
	g         graph.IGraph
	start     string
	end       string
	end_coord geo.Coord
	heuristic Heuristic

	open    *OpenSet
	closed  Dict[string, SearchNode]
	current SearchNode

	finished bool
	found    bool
}

func NewAStar(g graph.IGraph, start, end string, options ...Option) (*AStar, error) {
	opts := Options{Heuristic: geo.Distance}
	for _, option := range options {
		option(&opts)
	}
	if err := _ValidateQuery(g, start, end); err != nil {
		return nil, err
	}
	start_point, _ := g.GetPoint(start)
	end_point, _ := g.GetPoint(end)

	d := AStar{
		g:         g,
		start:     start,
		end:       end,
		end_coord: end_point.Coord,
		heuristic: opts.Heuristic,
		open:      NewOpenSet(10),
		closed:    NewDict[string, SearchNode](10),
	}
	d.open.Push(SearchNode{
		Point: start,
		G:     0,
		H:     d.heuristic(start_point.Coord, end_point.Coord),
	})
	return &d, nil
}

// NewDijkstra creates the same search with a zero estimate.
func NewDijkstra(g graph.IGraph, start, end string) (*AStar, error) {
	return NewAStar(g, start, end, WithHeuristic(ZeroHeuristic))
}

func _ValidateQuery(g graph.IGraph, start, end string) error {
	if g == nil || g.IsEmpty() {
		return fmt.Errorf("%w: map is empty", ErrInvalidQuery)
	}
	if !graph.IsPointID(start) {
		return fmt.Errorf("%w: malformed origin id %q", ErrInvalidQuery, start)
	}
	if !graph.IsPointID(end) {
		return fmt.Errorf("%w: malformed destination id %q", ErrInvalidQuery, end)
	}
	if _, ok := g.GetPoint(start); !ok {
		return fmt.Errorf("%w: unknown origin %q", ErrInvalidQuery, start)
	}
	if _, ok := g.GetPoint(end); !ok {
		return fmt.Errorf("%w: unknown destination %q", ErrInvalidQuery, end)
	}
	return nil
}

func (self *AStar) CalcShortestPath() bool {
	for self._Step() {
	}
	return self.found
}

func (self *AStar) Steps(count int, visit func(SearchNode)) bool {
	for c := 0; c < count; c++ {
		if !self._Step() {
			break
		}
		if visit != nil {
			visit(self.current)
		}
	}
	return !self.finished
}

func (self *AStar) IsFinished() bool {
	return self.finished
}
func (self *AStar) Found() bool {
	return self.found
}
func (self *AStar) OpenCount() int {
	return self.open.Length()
}
func (self *AStar) ClosedCount() int {
	return self.closed.Length()
}

// Returns the frontier in pop order.
func (self *AStar) OpenNodes() []SearchNode {
	return self.open.Nodes()
}

// Length of the found path, -1 if the search failed or is still running.
func (self *AStar) Length() float64 {
	if !self.found {
		return -1
	}
	return self.current.G
}

func (self *AStar) GetShortestPath() (Path, error) {
	if !self.found {
		return Path{}, nil
	}
	return ReconstructPath(self.g, self.closed, self.current)
}

// Runs the search to completion if needed and collects its outcome.
func (self *AStar) GetResult() (Result, error) {
	self.CalcShortestPath()
	if !self.found {
		return Result{
			Length:      -1,
			Path:        Path{},
			OpenCount:   self.OpenCount(),
			ClosedCount: self.ClosedCount(),
		}, nil
	}
	path, err := self.GetShortestPath()
	if err != nil {
		return _InvalidResult(), err
	}
	return Result{
		Length:      self.current.G,
		Path:        path,
		OpenCount:   self.OpenCount(),
		ClosedCount: self.ClosedCount(),
	}, nil
}

// Performs a single iteration, returns false if the search was already finished.
func (self *AStar) _Step() bool {
	if self.finished {
		return false
	}
	current, ok := self.open.Pop()
	if !ok {
		self.finished = true
		return false
	}
	self.closed[current.Point] = current
	self.current = current
	if current.Point == self.end {
		self.finished = true
		self.found = true
		return true
	}
	self._Expand(current)
	if self.open.Length() == 0 {
		self.finished = true
	}
	return true
}

func (self *AStar) _Expand(current SearchNode) {
	for route := range self.g.IncidentRoutes(current.Point) {
		// a self loop leads back to current
		other := route.OtherEndpoint(current.Point)
		point, ok := self.g.GetPoint(other)
		if !ok {
			continue
		}
		self._Admit(SearchNode{
			Point: other,
			Route: route.ID,
			G:     current.G + route.Length,
			H:     self.heuristic(point.Coord, self.end_coord),
		})
	}
}

func (self *AStar) _Admit(candidate SearchNode) {
	if old, ok := self.open.Get(candidate.Point); ok {
		if candidate.F() >= old.F() {
			return
		}
		self.open.Remove(candidate.Point)
	} else if old, ok := self.closed[candidate.Point]; ok {
		if candidate.F() >= old.F() {
			return
		}
		self.closed.Delete(candidate.Point)
	}
	self.open.Push(candidate)
}
