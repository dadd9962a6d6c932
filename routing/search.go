package routing

import (
	"errors"

	"github.com/ttpr0/go-planner/graph"
)

var ErrInvalidQuery = errors.New("invalid query")
var ErrInconsistentState = errors.New("inconsistent search state")

// Result of a single query.
//
// Length is -1 if no path exists, OpenCount and ClosedCount are -1 if the
// query was rejected.
type Result struct {
	Length      float64
	Path        Path
	OpenCount   int
	ClosedCount int
}

func (self Result) Found() bool {
	return self.Length >= 0 && len(self.Path) > 0
}

func (self Result) IsValid() bool {
	return self.OpenCount >= 0 && self.ClosedCount >= 0
}

func _InvalidResult() Result {
	return Result{
		Length:      -1,
		Path:        Path{},
		OpenCount:   -1,
		ClosedCount: -1,
	}
}

// Search computes the shortest path between origin and destination.
//
// A rejected query returns an error wrapping ErrInvalidQuery, an unreachable
// destination is no error.
func Search(g graph.IGraph, origin, destination string, options ...Option) (Result, error) {
	alg, err := NewAStar(g, origin, destination, options...)
	if err != nil {
		return _InvalidResult(), err
	}
	return alg.GetResult()
}
