package routing

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/ttpr0/go-planner/geo"
	"github.com/ttpr0/go-planner/graph"
	. "github.com/ttpr0/go-planner/util"
)

func _NewTestMap(t *testing.T, points []graph.Point, routes []graph.Route) *graph.Map {
	t.Helper()
	m, err := graph.NewMap(points, routes)
	if err != nil {
		t.Fatalf("failed to build map: %v", err)
	}
	return m
}

// three points 0.05 degrees apart on the equator, about 5.56 km
func _ScenarioMap(t *testing.T) *graph.Map {
	return _NewTestMap(t,
		[]graph.Point{
			{ID: "#A", Name: "Alpha", Coord: geo.NewCoord(0, 0)},
			{ID: "#B", Name: "Bravo", Coord: geo.NewCoord(0, 0.05)},
			{ID: "#C", Name: "Charlie", Coord: geo.NewCoord(0, 0.1)},
			{ID: "#D", Name: "Delta", Coord: geo.NewCoord(1, 1)},
		},
		[]graph.Route{
			{ID: "&R1", Name: "Road 1", Endpoints: [2]string{"#A", "#B"}, Length: 10},
			{ID: "&R2", Name: "Road 2", Endpoints: [2]string{"#B", "#C"}, Length: 10},
			{ID: "&R3", Name: "Road 3", Endpoints: [2]string{"#A", "#C"}, Length: 25},
			{ID: "&R4", Name: "Loop", Endpoints: [2]string{"#C", "#C"}, Length: 1},
		},
	)
}

func _CheckPath(t *testing.T, path Path, want []PathStep) {
	t.Helper()
	if len(path) != len(want) {
		t.Fatalf("path = %v; want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%v] = %v; want %v", i, path[i], want[i])
		}
	}
}

func TestSearchScenario(t *testing.T) {
	m := _ScenarioMap(t)
	res, err := Search(m, "#A", "#C")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if !res.Found() || res.Length != 20 {
		t.Errorf("length = %v; want 20", res.Length)
	}
	_CheckPath(t, res.Path, []PathStep{{"", "#A"}, {"&R1", "#B"}, {"&R2", "#C"}})
	if res.OpenCount != 0 || res.ClosedCount != 3 {
		t.Errorf("open/closed = %v/%v; want 0/3", res.OpenCount, res.ClosedCount)
	}
	if res.Path.Length(m) != res.Length {
		t.Errorf("route lengths sum to %v; want %v", res.Path.Length(m), res.Length)
	}
}

// One degree apart the estimate exceeds the road lengths, the search then
// accepts the first path reaching the destination.
func TestSearchOverestimatingHeuristic(t *testing.T) {
	m := _NewTestMap(t,
		[]graph.Point{
			{ID: "#A", Name: "Alpha", Coord: geo.NewCoord(0, 0)},
			{ID: "#B", Name: "Bravo", Coord: geo.NewCoord(0, 1)},
			{ID: "#C", Name: "Charlie", Coord: geo.NewCoord(0, 2)},
		},
		[]graph.Route{
			{ID: "&R1", Name: "Road 1", Endpoints: [2]string{"#A", "#B"}, Length: 10},
			{ID: "&R2", Name: "Road 2", Endpoints: [2]string{"#B", "#C"}, Length: 10},
			{ID: "&R3", Name: "Road 3", Endpoints: [2]string{"#A", "#C"}, Length: 25},
		},
	)
	res, err := Search(m, "#A", "#C")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.Length != 25 {
		t.Errorf("length = %v; want 25", res.Length)
	}
	_CheckPath(t, res.Path, []PathStep{{"", "#A"}, {"&R3", "#C"}})
	if res.OpenCount != 1 || res.ClosedCount != 2 {
		t.Errorf("open/closed = %v/%v; want 1/2", res.OpenCount, res.ClosedCount)
	}

	// without estimate the shorter path is found
	alg, _ := NewDijkstra(m, "#A", "#C")
	res, _ = alg.GetResult()
	if res.Length != 20 {
		t.Errorf("dijkstra length = %v; want 20", res.Length)
	}
}

func TestSearchSamePoint(t *testing.T) {
	res, err := Search(_ScenarioMap(t), "#A", "#A")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.Length != 0 {
		t.Errorf("length = %v; want 0", res.Length)
	}
	_CheckPath(t, res.Path, []PathStep{{"", "#A"}})
	if res.OpenCount != 0 || res.ClosedCount != 1 {
		t.Errorf("open/closed = %v/%v; want 0/1", res.OpenCount, res.ClosedCount)
	}
}

func TestSearchNoPath(t *testing.T) {
	res, err := Search(_ScenarioMap(t), "#A", "#D")
	if err != nil {
		t.Fatalf("unreachable destination should not be an error: %v", err)
	}
	if res.Found() || res.Length != -1 || len(res.Path) != 0 {
		t.Errorf("result = %+v; want no path", res)
	}
	if !res.IsValid() {
		t.Errorf("counts should be non-negative: %v/%v", res.OpenCount, res.ClosedCount)
	}
	if res.OpenCount != 0 || res.ClosedCount != 3 {
		t.Errorf("open/closed = %v/%v; want 0/3", res.OpenCount, res.ClosedCount)
	}
}

func TestSearchInvalidQuery(t *testing.T) {
	m := _ScenarioMap(t)
	empty := _NewTestMap(t, nil, nil)

	tests := []struct {
		name  string
		g     graph.IGraph
		start string
		end   string
	}{
		{"empty map", empty, "#A", "#C"},
		{"origin without prefix", m, "A", "#C"},
		{"origin too short", m, "#", "#C"},
		{"origin is a route", m, "&R1", "#C"},
		{"destination empty", m, "#A", ""},
		{"unknown origin", m, "#Z", "#C"},
		{"unknown destination", m, "#A", "#Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Search(tt.g, tt.start, tt.end)
			if !errors.Is(err, ErrInvalidQuery) {
				t.Fatalf("error = %v; want ErrInvalidQuery", err)
			}
			if res.IsValid() || res.OpenCount != -1 || res.ClosedCount != -1 {
				t.Errorf("counts = %v/%v; want -1/-1", res.OpenCount, res.ClosedCount)
			}
			if res.Found() || len(res.Path) != 0 {
				t.Errorf("invalid query should have no path")
			}
		})
	}
}

func TestSearchTieBreak(t *testing.T) {
	points := []graph.Point{
		{ID: "#A", Name: "Alpha", Coord: geo.NewCoord(0, 0)},
		{ID: "#B", Name: "Bravo", Coord: geo.NewCoord(0, 0.01)},
	}
	first := graph.Route{ID: "&P1", Name: "Parallel 1", Endpoints: [2]string{"#A", "#B"}, Length: 5}
	second := graph.Route{ID: "&P2", Name: "Parallel 2", Endpoints: [2]string{"#B", "#A"}, Length: 5}

	res, _ := Search(_NewTestMap(t, points, []graph.Route{first, second}), "#A", "#B")
	_CheckPath(t, res.Path, []PathStep{{"", "#A"}, {"&P1", "#B"}})

	res, _ = Search(_NewTestMap(t, points, []graph.Route{second, first}), "#A", "#B")
	_CheckPath(t, res.Path, []PathStep{{"", "#A"}, {"&P2", "#B"}})
}

func TestSearchReopensClosedNode(t *testing.T) {
	s, a, b, g := geo.NewCoord(0, 0), geo.NewCoord(0, 1), geo.NewCoord(0, 2), geo.NewCoord(0, 3)
	m := _NewTestMap(t,
		[]graph.Point{
			{ID: "#S", Name: "Start", Coord: s},
			{ID: "#A", Name: "Alpha", Coord: a},
			{ID: "#B", Name: "Bravo", Coord: b},
			{ID: "#G", Name: "Goal", Coord: g},
		},
		[]graph.Route{
			{ID: "&SA", Name: "S-A", Endpoints: [2]string{"#S", "#A"}, Length: 1},
			{ID: "&SB", Name: "S-B", Endpoints: [2]string{"#S", "#B"}, Length: 2},
			{ID: "&AB", Name: "A-B", Endpoints: [2]string{"#A", "#B"}, Length: 0.5},
			{ID: "&BG", Name: "B-G", Endpoints: [2]string{"#B", "#G"}, Length: 5},
		},
	)
	// admissible but inconsistent
	heuristic := func(from, to geo.Coord) float64 {
		if from == a {
			return 5
		}
		return 0
	}

	alg, err := NewAStar(m, "#S", "#G", WithHeuristic(heuristic))
	if err != nil {
		t.Fatalf("NewAStar failed: %v", err)
	}
	expanded := NewList[string](5)
	for alg.Steps(1, func(node SearchNode) { expanded.Add(node.Point) }) {
	}
	want := []string{"#S", "#B", "#A", "#B", "#G"}
	if !reflect.DeepEqual([]string(expanded), want) {
		t.Errorf("expansion order = %v; want %v", expanded, want)
	}

	res, err := alg.GetResult()
	if err != nil {
		t.Fatalf("GetResult failed: %v", err)
	}
	if res.Length != 6.5 {
		t.Errorf("length = %v; want 6.5", res.Length)
	}
	_CheckPath(t, res.Path, []PathStep{{"", "#S"}, {"&SA", "#A"}, {"&AB", "#B"}, {"&BG", "#G"}})
	if res.OpenCount != 0 || res.ClosedCount != 4 {
		t.Errorf("open/closed = %v/%v; want 0/4", res.OpenCount, res.ClosedCount)
	}
}

func TestSteps(t *testing.T) {
	alg, err := NewAStar(_ScenarioMap(t), "#A", "#C")
	if err != nil {
		t.Fatalf("NewAStar failed: %v", err)
	}
	want := []struct {
		point   string
		running bool
	}{
		{"#A", true},
		{"#B", true},
		{"#C", false},
	}
	for i, w := range want {
		visited := NewList[string](1)
		running := alg.Steps(1, func(node SearchNode) { visited.Add(node.Point) })
		if running != w.running {
			t.Errorf("step %v: running = %v; want %v", i, running, w.running)
		}
		if visited.Length() != 1 || visited[0] != w.point {
			t.Errorf("step %v: visited %v; want %v", i, visited, w.point)
		}
	}
	if !alg.IsFinished() || !alg.Found() {
		t.Errorf("search should be finished with a path")
	}
	if alg.Steps(5, func(node SearchNode) { t.Errorf("unexpected visit of %v", node.Point) }) {
		t.Errorf("finished search should not report running")
	}
	if alg.Length() != 20 {
		t.Errorf("Length() = %v; want 20", alg.Length())
	}
}

func TestIdempotence(t *testing.T) {
	m := _ScenarioMap(t)
	for _, q := range [][2]string{{"#A", "#C"}, {"#A", "#D"}, {"#C", "#A"}, {"#X", "#A"}} {
		first, err1 := Search(m, q[0], q[1])
		second, err2 := Search(m, q[0], q[1])
		if !reflect.DeepEqual(first, second) || (err1 == nil) != (err2 == nil) {
			t.Errorf("Search(%v, %v) not repeatable: %+v vs %+v", q[0], q[1], first, second)
		}
	}
}

func TestReconstructPathInconsistent(t *testing.T) {
	m := _ScenarioMap(t)

	closed := NewDict[string, SearchNode](1)
	closed["#B"] = SearchNode{Point: "#B", Route: "&R1", G: 10}
	if _, err := ReconstructPath(m, closed, closed["#B"]); !errors.Is(err, ErrInconsistentState) {
		t.Errorf("missing predecessor: error = %v; want ErrInconsistentState", err)
	}

	closed = NewDict[string, SearchNode](1)
	closed["#C"] = SearchNode{Point: "#C", Route: "&R4", G: 1}
	if _, err := ReconstructPath(m, closed, closed["#C"]); !errors.Is(err, ErrInconsistentState) {
		t.Errorf("cyclic chain: error = %v; want ErrInconsistentState", err)
	}
}

// grid of points 0.01 degrees apart, every road at least as long as the
// great-circle distance of its endpoints
func _GridMap(t *testing.T, n int, seed int64) *graph.Map {
	r := rand.New(rand.NewSource(seed))
	id := func(i, j int) string { return fmt.Sprintf("#P%v_%v", i, j) }

	points := NewList[graph.Point](n*n + 1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			points.Add(graph.Point{ID: id(i, j), Name: id(i, j)[1:], Coord: geo.NewCoord(48+float64(i)*0.01, 11+float64(j)*0.01)})
		}
	}
	points.Add(graph.Point{ID: "#ISLAND", Name: "Island", Coord: geo.NewCoord(48.5, 11.5)})
	coords := NewDict[string, geo.Coord](n * n)
	for _, p := range points {
		coords[p.ID] = p.Coord
	}

	routes := NewList[graph.Route](3 * n * n)
	add := func(a, b string) {
		length := geo.Distance(coords[a], coords[b]) * (1 + r.Float64()*0.5)
		name := fmt.Sprintf("&E%v", routes.Length())
		routes.Add(graph.Route{ID: name, Name: name[1:], Endpoints: [2]string{a, b}, Length: length})
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j+1 < n {
				add(id(i, j), id(i, j+1))
			}
			if i+1 < n {
				add(id(i, j), id(i+1, j))
			}
			if i+1 < n && j+1 < n && r.Intn(3) == 0 {
				add(id(i, j), id(i+1, j+1))
			}
		}
	}
	return _NewTestMap(t, points, routes)
}

func TestSearchProperties(t *testing.T) {
	const eps = 1e-9
	m := _GridMap(t, 5, 42)
	points := m.Points()
	for _, origin := range points {
		for _, dest := range points {
			res, err := Search(m, origin.ID, dest.ID)
			if err != nil {
				t.Fatalf("Search(%v, %v) failed: %v", origin.ID, dest.ID, err)
			}
			if res.OpenCount < 0 || res.ClosedCount < 0 {
				t.Errorf("Search(%v, %v): negative counts", origin.ID, dest.ID)
			}
			if (origin.ID == "#ISLAND") != (dest.ID == "#ISLAND") {
				if res.Found() {
					t.Errorf("Search(%v, %v) found a path to the island", origin.ID, dest.ID)
				}
				continue
			}
			if !res.Found() {
				t.Fatalf("Search(%v, %v) found no path", origin.ID, dest.ID)
			}

			path := res.Path
			if path[0].Route != "" || path.Origin() != origin.ID || path.Destination() != dest.ID {
				t.Errorf("Search(%v, %v): bad path ends %v", origin.ID, dest.ID, path)
			}
			for i := 1; i < len(path); i++ {
				route, ok := m.GetRoute(path[i].Route)
				if !ok || route.OtherEndpoint(path[i].Point) != path[i-1].Point || !route.Touches(path[i].Point) {
					t.Errorf("Search(%v, %v): step %v does not continue the path", origin.ID, dest.ID, path[i])
				}
			}
			if math.Abs(path.Length(m)-res.Length) > eps {
				t.Errorf("Search(%v, %v): route lengths %v != %v", origin.ID, dest.ID, path.Length(m), res.Length)
			}
			if geo.Distance(origin.Coord, dest.Coord) > res.Length+eps {
				t.Errorf("Search(%v, %v): estimate exceeds length", origin.ID, dest.ID)
			}

			alg, _ := NewDijkstra(m, origin.ID, dest.ID)
			ref, _ := alg.GetResult()
			if math.Abs(ref.Length-res.Length) > eps {
				t.Errorf("Search(%v, %v) = %v; dijkstra found %v", origin.ID, dest.ID, res.Length, ref.Length)
			}
		}
	}
}
