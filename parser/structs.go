package parser

import (
	"fmt"

	"github.com/ttpr0/go-planner/geo"
)

//*******************************************
// text map rows
//*******************************************

type PointRow struct {
	ID        string  `csv:"ID"`
	Name      string  `csv:"Name"`
	Latitude  float64 `csv:"Latitude"`
	Longitude float64 `csv:"Longitude"`
}

type RouteRow struct {
	ID        string  `csv:"ID"`
	Name      string  `csv:"Name"`
	Endpoint1 string  `csv:"Endpoint 1"`
	Endpoint2 string  `csv:"Endpoint 2"`
	Length    float64 `csv:"Length"`
}

//*******************************************
// errors
//*******************************************

// LoadError reports the file and line a map could not be loaded from.
// Line is 0 if the error is not tied to a row.
type LoadError struct {
	File   string
	Line   int
	Reason string
	Err    error
}

func (self *LoadError) Error() string {
	if self.Line == 0 {
		return fmt.Sprintf("%v: %v", self.File, self.Reason)
	}
	return fmt.Sprintf("%v:%v: %v", self.File, self.Line, self.Reason)
}

func (self *LoadError) Unwrap() error {
	return self.Err
}

//*******************************************
// osm import
//*******************************************

type _OSMWay struct {
	ID    int64
	Name  string
	Nodes []int64
}

type _OSMNode struct {
	Name  string
	Point geo.Coord
	Found bool
	Count int
}
