package routing

//*******************************************
// shortest path interface
//*******************************************

type IShortestPath interface {
	// Runs the search to completion, returns true if a path was found.
	CalcShortestPath() bool
	// Runs at most count expansions calling visit for every expanded node,
	// returns false once the search is finished.
	Steps(count int, visit func(SearchNode)) bool
	GetShortestPath() (Path, error)
	GetResult() (Result, error)
	OpenCount() int
	ClosedCount() int
}

// SearchNode is a candidate state of the search.
//
// Route is the route used to reach Point, empty for the origin node.
type SearchNode struct {
	Point string
	Route string
	G     float64
	H     float64
}

func (self SearchNode) F() float64 {
	return self.G + self.H
}
