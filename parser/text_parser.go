package parser

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ttpr0/go-planner/geo"
	"github.com/ttpr0/go-planner/graph"
	. "github.com/ttpr0/go-planner/util"
)

const TEXT_DELIMITER = ';'

// ParseTextMap loads a map from a points and a routes file.
//
// Both files start with a fixed header line followed by one row per item.
// Routes may only reference points of the points file.
func ParseTextMap(points_file, routes_file string) (*graph.Map, error) {
	points, err := ParsePoints(points_file)
	if err != nil {
		return nil, err
	}
	routes, err := ParseRoutes(routes_file, points)
	if err != nil {
		return nil, err
	}
	m, err := graph.NewMap(points, routes)
	if err != nil {
		return nil, &LoadError{File: routes_file, Reason: err.Error(), Err: err}
	}
	return m, nil
}

func ParsePoints(file string) ([]graph.Point, error) {
	points := NewList[graph.Point](100)
	ids := NewDict[string, bool](100)
	line := 1
	for row, err := range ReadCSVFromFile[PointRow](file, TEXT_DELIMITER, true) {
		if err != nil {
			return nil, _LoadError(file, err)
		}
		line += 1
		if !graph.IsPointID(row.ID) {
			return nil, &LoadError{File: file, Line: line, Reason: fmt.Sprintf("malformed point id %q", row.ID)}
		}
		if !_IsValidName(row.Name) {
			return nil, &LoadError{File: file, Line: line, Reason: fmt.Sprintf("point name %q is too short", row.Name)}
		}
		coord := geo.NewCoord(row.Latitude, row.Longitude)
		if !coord.IsValid() {
			return nil, &LoadError{File: file, Line: line, Reason: fmt.Sprintf("coordinates (%v, %v) out of range", row.Latitude, row.Longitude)}
		}
		if ids.ContainsKey(row.ID) {
			return nil, &LoadError{File: file, Line: line, Reason: fmt.Sprintf("duplicate point id %q", row.ID)}
		}
		ids[row.ID] = true
		points.Add(graph.Point{
			ID:    row.ID,
			Name:  row.Name,
			Coord: coord,
		})
	}
	return points, nil
}

func ParseRoutes(file string, points []graph.Point) ([]graph.Route, error) {
	point_ids := NewDict[string, bool](len(points))
	for _, p := range points {
		point_ids[p.ID] = true
	}

	routes := NewList[graph.Route](100)
	ids := NewDict[string, bool](100)
	line := 1
	for row, err := range ReadCSVFromFile[RouteRow](file, TEXT_DELIMITER, true) {
		if err != nil {
			return nil, _LoadError(file, err)
		}
		line += 1
		if !graph.IsRouteID(row.ID) {
			return nil, &LoadError{File: file, Line: line, Reason: fmt.Sprintf("malformed route id %q", row.ID)}
		}
		if !_IsValidName(row.Name) {
			return nil, &LoadError{File: file, Line: line, Reason: fmt.Sprintf("route name %q is too short", row.Name)}
		}
		for _, endpoint := range [2]string{row.Endpoint1, row.Endpoint2} {
			if !graph.IsPointID(endpoint) {
				return nil, &LoadError{File: file, Line: line, Reason: fmt.Sprintf("malformed endpoint id %q", endpoint)}
			}
			if !point_ids.ContainsKey(endpoint) {
				return nil, &LoadError{File: file, Line: line, Reason: fmt.Sprintf("unknown endpoint %q", endpoint)}
			}
		}
		if row.Length < 0 || math.IsInf(row.Length, 0) || math.IsNaN(row.Length) {
			return nil, &LoadError{File: file, Line: line, Reason: fmt.Sprintf("invalid length %v", row.Length)}
		}
		if ids.ContainsKey(row.ID) {
			return nil, &LoadError{File: file, Line: line, Reason: fmt.Sprintf("duplicate route id %q", row.ID)}
		}
		ids[row.ID] = true
		routes.Add(graph.Route{
			ID:        row.ID,
			Name:      row.Name,
			Endpoints: [2]string{row.Endpoint1, row.Endpoint2},
			Length:    row.Length,
		})
	}
	return routes, nil
}

func _IsValidName(name string) bool {
	return len(strings.TrimSpace(name)) >= 2
}

func _LoadError(file string, err error) *LoadError {
	var cerr *CSVError
	if errors.As(err, &cerr) {
		return &LoadError{File: file, Line: cerr.Line, Reason: cerr.Err.Error(), Err: err}
	}
	return &LoadError{File: file, Reason: err.Error(), Err: err}
}
