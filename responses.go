package main

import (
	"github.com/paulmach/orb/geojson"
	"github.com/ttpr0/go-planner/geo"
	"github.com/ttpr0/go-planner/graph"
	"github.com/ttpr0/go-planner/routing"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

//**********************************************************
// map responses
//**********************************************************

type MapInfo struct {
	Name    string `json:"name"`
	Points  int    `json:"points"`
	Routes  int    `json:"routes"`
	Default bool   `json:"default"`
}

type MapsResponse struct {
	Maps []MapInfo `json:"maps"`
}

type PointInfo struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type PointsResponse struct {
	Map    string      `json:"map"`
	Points []PointInfo `json:"points"`
}

func NewPointsResponse(name string, g graph.IGraph) PointsResponse {
	points := g.Points()
	resp := PointsResponse{
		Map:    name,
		Points: make([]PointInfo, len(points)),
	}
	for i, p := range points {
		resp.Points[i] = PointInfo{ID: p.ID, Name: p.Name, Lat: p.Coord.Lat(), Lon: p.Coord.Lon()}
	}
	return resp
}

type ClosestPointResponse struct {
	Map      string    `json:"map"`
	Point    PointInfo `json:"point"`
	Distance float64   `json:"distance"`
}

type RouteInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Endpoints [2]string `json:"endpoints"`
	Length    float64   `json:"length"`
}

type RoutesResponse struct {
	Map    string      `json:"map"`
	Routes []RouteInfo `json:"routes"`
}

func NewRoutesResponse(name string, g graph.IGraph) RoutesResponse {
	routes := g.Routes()
	resp := RoutesResponse{
		Map:    name,
		Routes: make([]RouteInfo, len(routes)),
	}
	for i, r := range routes {
		resp.Routes[i] = RouteInfo{ID: r.ID, Name: r.Name, Endpoints: r.Endpoints, Length: r.Length}
	}
	return resp
}

//**********************************************************
// routing responses
//**********************************************************

type StepInfo struct {
	Route     string  `json:"route"`
	RouteName string  `json:"route_name"`
	Point     string  `json:"point"`
	PointName string  `json:"point_name"`
	Length    float64 `json:"length"`
}

type RoutingResponse struct {
	Found       bool                      `json:"found"`
	Length      float64                   `json:"length"`
	OpenCount   int                       `json:"open_count"`
	ClosedCount int                       `json:"closed_count"`
	Steps       []StepInfo                `json:"steps"`
	Polyline    string                    `json:"polyline"`
	Geometry    *geojson.FeatureCollection `json:"geometry"`
}

func NewRoutingResponse(g graph.IGraph, res routing.Result) RoutingResponse {
	resp := RoutingResponse{
		Found:       res.Found(),
		Length:      res.Length,
		OpenCount:   res.OpenCount,
		ClosedCount: res.ClosedCount,
		Steps:       make([]StepInfo, 0, len(res.Path)),
		Geometry:    geojson.NewFeatureCollection(),
	}
	for _, step := range res.Path {
		info := StepInfo{Route: step.Route, Point: step.Point}
		if point, ok := g.GetPoint(step.Point); ok {
			info.PointName = point.Name
		}
		if route, ok := g.GetRoute(step.Route); ok {
			info.RouteName = route.Name
			info.Length = route.Length
		}
		resp.Steps = append(resp.Steps, info)
	}
	if !resp.Found {
		return resp
	}

	coords := res.Path.GetGeometry(g)
	resp.Polyline = geo.EncodePolyline(coords)
	if len(coords) > 1 {
		resp.Geometry.Append(geo.NewLineFeature(coords, map[string]any{"length": res.Length}))
	}
	for i, coord := range coords {
		step := resp.Steps[i]
		resp.Geometry.Append(geo.NewPointFeature(coord, map[string]any{"id": step.Point, "name": step.PointName}))
	}
	return resp
}

type DrawContextResponse struct {
	Key int `json:"key"`
}

type ExpandedNode struct {
	Point string  `json:"point"`
	Route string  `json:"route"`
	G     float64 `json:"g"`
	H     float64 `json:"h"`
}

type DrawStepResponse struct {
	Key         int              `json:"key"`
	Finished    bool             `json:"finished"`
	Expanded    []ExpandedNode   `json:"expanded"`
	OpenCount   int              `json:"open_count"`
	ClosedCount int              `json:"closed_count"`
	Result      *RoutingResponse `json:"result,omitempty"`
}
