package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ttpr0/go-planner/graph"
	"github.com/ttpr0/go-planner/parser"
	. "github.com/ttpr0/go-planner/util"
)

func _TestServer(t *testing.T) *httptest.Server {
	t.Helper()
	m, err := parser.ParseTextMap("parser/testdata/points.txt", "parser/testdata/routes.txt")
	if err != nil {
		t.Fatalf("failed to load map: %v", err)
	}
	manager := NewMapManagerFromMaps(Dict[string, *graph.Map]{"sample": m}, "sample")
	server := httptest.NewServer(NewRouter(manager))
	t.Cleanup(server.Close)
	return server
}

func _Get[T any](t *testing.T, url string, status int) T {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %v failed: %v", url, err)
	}
	defer resp.Body.Close()
	return _Decode[T](t, resp, status)
}

func _Post[T any](t *testing.T, url string, body any, status int) T {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %v failed: %v", url, err)
	}
	defer resp.Body.Close()
	return _Decode[T](t, resp, status)
}

func _Decode[T any](t *testing.T, resp *http.Response, status int) T {
	t.Helper()
	var value T
	if resp.StatusCode != status {
		t.Fatalf("%v: status = %v; want %v", resp.Request.URL, resp.StatusCode, status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&value); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return value
}

func TestMapsEndpoints(t *testing.T) {
	server := _TestServer(t)

	maps := _Get[MapsResponse](t, server.URL+"/v0/maps", http.StatusOK)
	if len(maps.Maps) != 1 || maps.Maps[0] != (MapInfo{Name: "sample", Points: 3, Routes: 3, Default: true}) {
		t.Errorf("maps = %+v", maps)
	}

	points := _Get[PointsResponse](t, server.URL+"/v0/points", http.StatusOK)
	if points.Map != "sample" || len(points.Points) != 3 || points.Points[1] != (PointInfo{"#B", "Bravo", 0, 0.05}) {
		t.Errorf("points = %+v", points)
	}

	routes := _Get[RoutesResponse](t, server.URL+"/v0/routes?map=sample", http.StatusOK)
	if len(routes.Routes) != 3 || routes.Routes[2] != (RouteInfo{"&R3", "Road 3", [2]string{"#A", "#C"}, 25}) {
		t.Errorf("routes = %+v", routes)
	}

	_Get[ErrorResponse](t, server.URL+"/v0/routes?map=other", http.StatusNotFound)

	closest := _Get[ClosestPointResponse](t, server.URL+"/v0/points/closest?lat=0.001&lon=0.09", http.StatusOK)
	if closest.Point.ID != "#C" || closest.Distance <= 0 || closest.Distance > 2 {
		t.Errorf("closest = %+v", closest)
	}
	_Get[ErrorResponse](t, server.URL+"/v0/points/closest?lat=10&lon=10&max_dist=5", http.StatusNotFound)
	_Get[ErrorResponse](t, server.URL+"/v0/points/closest?lat=100&lon=0", http.StatusBadRequest)
	_Get[ErrorResponse](t, server.URL+"/v0/points/closest?lat=north", http.StatusBadRequest)
}

func TestRoutingEndpoint(t *testing.T) {
	server := _TestServer(t)

	resp := _Post[RoutingResponse](t, server.URL+"/v0/routing", RoutingRequest{Start: "#A", End: "#C", Algorithm: "A*"}, http.StatusOK)
	if !resp.Found || resp.Length != 20 || resp.OpenCount != 0 || resp.ClosedCount != 3 {
		t.Errorf("response = %+v", resp)
	}
	want := []StepInfo{
		{Route: "", Point: "#A", PointName: "Alpha"},
		{Route: "&R1", RouteName: "Road 1", Point: "#B", PointName: "Bravo", Length: 10},
		{Route: "&R2", RouteName: "Road 2", Point: "#C", PointName: "Charlie", Length: 10},
	}
	if len(resp.Steps) != len(want) {
		t.Fatalf("steps = %+v", resp.Steps)
	}
	for i := range want {
		if resp.Steps[i] != want[i] {
			t.Errorf("step %v = %+v; want %+v", i, resp.Steps[i], want[i])
		}
	}
	if resp.Polyline == "" {
		t.Errorf("polyline missing")
	}
	// one line plus one feature per point
	if resp.Geometry == nil || len(resp.Geometry.Features) != 4 || resp.Geometry.Features[0].Geometry.GeoJSONType() != "LineString" {
		t.Errorf("geometry = %+v", resp.Geometry)
	}

	dijkstra := _Post[RoutingResponse](t, server.URL+"/v0/routing", RoutingRequest{Map: "sample", Start: "#C", End: "#A", Algorithm: "Dijkstra"}, http.StatusOK)
	if !dijkstra.Found || dijkstra.Length != 20 {
		t.Errorf("dijkstra response = %+v", dijkstra)
	}
}

func TestRoutingEndpointErrors(t *testing.T) {
	server := _TestServer(t)
	url := server.URL + "/v0/routing"

	_Post[ErrorResponse](t, url, RoutingRequest{Start: "A", End: "#C"}, http.StatusBadRequest)
	_Post[ErrorResponse](t, url, RoutingRequest{Start: "#A", End: "#Z"}, http.StatusBadRequest)
	_Post[ErrorResponse](t, url, RoutingRequest{Start: "#A", End: "#C", Algorithm: "CH"}, http.StatusBadRequest)
	_Post[ErrorResponse](t, url, RoutingRequest{Map: "other", Start: "#A", End: "#C"}, http.StatusNotFound)

	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte("{")))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body: status = %v; want 400", resp.StatusCode)
	}

	resp, err = http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET routing: status = %v; want 405", resp.StatusCode)
	}
}

func TestDrawEndpoints(t *testing.T) {
	server := _TestServer(t)

	ctx := _Post[DrawContextResponse](t, server.URL+"/v0/routing/draw/create", DrawContextRequest{Start: "#A", End: "#C"}, http.StatusOK)

	step := _Post[DrawStepResponse](t, server.URL+"/v0/routing/draw/step", DrawRoutingRequest{Key: ctx.Key, Stepcount: 1}, http.StatusOK)
	if step.Finished || len(step.Expanded) != 1 || step.Expanded[0].Point != "#A" || step.Result != nil {
		t.Errorf("first step = %+v", step)
	}
	if step.OpenCount != 2 || step.ClosedCount != 1 {
		t.Errorf("first step open/closed = %v/%v; want 2/1", step.OpenCount, step.ClosedCount)
	}

	step = _Post[DrawStepResponse](t, server.URL+"/v0/routing/draw/step", DrawRoutingRequest{Key: ctx.Key, Stepcount: 10}, http.StatusOK)
	if !step.Finished || len(step.Expanded) != 2 || step.Expanded[1].Point != "#C" {
		t.Errorf("last step = %+v", step)
	}
	if step.Result == nil || !step.Result.Found || step.Result.Length != 20 {
		t.Errorf("last step result = %+v", step.Result)
	}

	// finished contexts are removed
	_Post[ErrorResponse](t, server.URL+"/v0/routing/draw/step", DrawRoutingRequest{Key: ctx.Key, Stepcount: 1}, http.StatusNotFound)
	_Post[ErrorResponse](t, server.URL+"/v0/routing/draw/create", DrawContextRequest{Start: "#A", End: "#X"}, http.StatusBadRequest)
}

func TestDrawContextsLimit(t *testing.T) {
	m, err := parser.ParseTextMap("parser/testdata/points.txt", "parser/testdata/routes.txt")
	if err != nil {
		t.Fatal(err)
	}
	factory, _ := GetAlgorithm("A*")
	contexts := NewDrawContexts(2)
	for i := 0; i < 2; i++ {
		alg, _ := factory(m, "#A", "#C")
		if _, err := contexts.Add(m, alg); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	alg, _ := factory(m, "#A", "#C")
	if _, err := contexts.Add(m, alg); err == nil {
		t.Errorf("Add beyond the limit should fail")
	}
	if contexts.Length() != 2 {
		t.Errorf("Length() = %v; want 2", contexts.Length())
	}
}
