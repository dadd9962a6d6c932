package main

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/gorilla/mux"
	"github.com/ttpr0/go-planner/geo"
	"github.com/ttpr0/go-planner/graph"
	"github.com/ttpr0/go-planner/routing"
	. "github.com/ttpr0/go-planner/util"
	"golang.org/x/exp/slog"
)

const MAX_DRAW_CONTEXTS = 100

type RoutingService struct {
	manager  *MapManager
	contexts *DrawContexts
}

func NewRoutingService(manager *MapManager) *RoutingService {
	return &RoutingService{
		manager:  manager,
		contexts: NewDrawContexts(MAX_DRAW_CONTEXTS),
	}
}

func (self *RoutingService) Register(app *mux.Router) {
	MapGet(app, "/v0/maps", self.HandleMapsRequest)
	MapGet(app, "/v0/points", self.HandlePointsRequest)
	MapGet(app, "/v0/points/closest", self.HandleClosestPointRequest)
	MapGet(app, "/v0/routes", self.HandleRoutesRequest)
	MapPost(app, "/v0/routing", self.HandleRoutingRequest)
	MapPost(app, "/v0/routing/draw/create", self.HandleCreateContextRequest)
	MapPost(app, "/v0/routing/draw/step", self.HandleRoutingStepRequest)
}

//**********************************************************
// map handlers
//**********************************************************

func (self *RoutingService) HandleMapsRequest(req none) Result {
	names := self.manager.MapNames()
	resp := MapsResponse{Maps: make([]MapInfo, 0, names.Length())}
	for _, name := range names {
		m := self.manager.GetMap(name).Value
		resp.Maps = append(resp.Maps, MapInfo{
			Name:    name,
			Points:  m.PointCount(),
			Routes:  m.RouteCount(),
			Default: name == self.manager.DefaultMap(),
		})
	}
	return OK(resp)
}

func (self *RoutingService) HandlePointsRequest(req MapRequest) Result {
	m_ := self.manager.GetMap(req.Map)
	if !m_.HasValue() {
		return NotFound("Map not found")
	}
	return OK(NewPointsResponse(_MapName(self.manager, req.Map), m_.Value))
}

// A missing or non-positive max_dist searches without limit.
func (self *RoutingService) HandleClosestPointRequest(req ClosestPointRequest) Result {
	index_ := self.manager.GetIndex(req.Map)
	if !index_.HasValue() {
		return NotFound("Map not found")
	}
	coord := geo.NewCoord(req.Lat, req.Lon)
	if !coord.IsValid() {
		return BadRequest("Invalid coordinates")
	}
	max_dist := req.MaxDist
	if max_dist <= 0 {
		max_dist = -1
	}
	p, ok := index_.Value.GetClosestPoint(coord, max_dist)
	if !ok {
		return NotFound("No point in range")
	}
	return OK(ClosestPointResponse{
		Map:      _MapName(self.manager, req.Map),
		Point:    PointInfo{ID: p.ID, Name: p.Name, Lat: p.Coord.Lat(), Lon: p.Coord.Lon()},
		Distance: geo.Distance(coord, p.Coord),
	})
}

func (self *RoutingService) HandleRoutesRequest(req MapRequest) Result {
	m_ := self.manager.GetMap(req.Map)
	if !m_.HasValue() {
		return NotFound("Map not found")
	}
	return OK(NewRoutesResponse(_MapName(self.manager, req.Map), m_.Value))
}

func _MapName(manager *MapManager, name string) string {
	if name == "" {
		return manager.DefaultMap()
	}
	return name
}

//**********************************************************
// routing handlers
//**********************************************************

func (self *RoutingService) HandleRoutingRequest(req RoutingRequest) Result {
	m, alg, res := self._CreateAlgorithm(req.Map, req.Start, req.End, req.Algorithm)
	if alg == nil {
		return res
	}
	slog.Debug(fmt.Sprintf("Start calculating shortest path between %v and %v", req.Start, req.End))
	result, err := alg.GetResult()
	if err != nil {
		slog.Error("routing failed", "error", err.Error())
		return InternalError(err.Error())
	}
	if result.Found() {
		slog.Debug("shortest path found", "length", result.Length)
	} else {
		slog.Debug("no path found")
	}
	return OK(NewRoutingResponse(m, result))
}

func (self *RoutingService) HandleCreateContextRequest(req DrawContextRequest) Result {
	m, alg, res := self._CreateAlgorithm(req.Map, req.Start, req.End, req.Algorithm)
	if alg == nil {
		return res
	}
	key, err := self.contexts.Add(m, alg)
	if err != nil {
		return BadRequest(err.Error())
	}
	return OK(DrawContextResponse{key})
}

func (self *RoutingService) HandleRoutingStepRequest(req DrawRoutingRequest) Result {
	stepcount := req.Stepcount
	if stepcount <= 0 {
		stepcount = 1
	}
	resp, ok, err := self.contexts.Step(req.Key, stepcount)
	if !ok {
		return NotFound("key not found")
	}
	if err != nil {
		slog.Error("routing failed", "error", err.Error())
		return InternalError(err.Error())
	}
	return OK(resp)
}

func (self *RoutingService) _CreateAlgorithm(name, start, end, algorithm string) (graph.IGraph, routing.IShortestPath, Result) {
	m_ := self.manager.GetMap(name)
	if !m_.HasValue() {
		return nil, nil, NotFound("Map not found")
	}
	factory, ok := GetAlgorithm(algorithm)
	if !ok {
		return nil, nil, BadRequest("Algorithm not found")
	}
	slog.Debug(fmt.Sprintf("Using algorithm: %v", algorithm))
	alg, err := factory(m_.Value, start, end)
	if err != nil {
		if errors.Is(err, routing.ErrInvalidQuery) {
			return nil, nil, BadRequest(err.Error())
		}
		return nil, nil, InternalError(err.Error())
	}
	return m_.Value, alg, OK("")
}

//**********************************************************
// draw contexts
//**********************************************************

type _DrawContext struct {
	g   graph.IGraph
	alg routing.IShortestPath
}

// DrawContexts stores searches advanced step by step through the api.
type DrawContexts struct {
	mu       sync.Mutex
	contexts Dict[int, _DrawContext]
	max      int
}

func NewDrawContexts(max int) *DrawContexts {
	return &DrawContexts{
		contexts: NewDict[int, _DrawContext](10),
		max:      max,
	}
}

func (self *DrawContexts) Add(g graph.IGraph, alg routing.IShortestPath) (int, error) {
	self.mu.Lock()
	defer self.mu.Unlock()

	if self.contexts.Length() >= self.max {
		return -1, errors.New("too many open draw contexts")
	}
	for {
		k := rand.Intn(1000000)
		if !self.contexts.ContainsKey(k) {
			self.contexts[k] = _DrawContext{g, alg}
			return k, nil
		}
	}
}

func (self *DrawContexts) Length() int {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.contexts.Length()
}

// Advances the search of key, a finished search is removed.
func (self *DrawContexts) Step(key int, count int) (DrawStepResponse, bool, error) {
	self.mu.Lock()
	defer self.mu.Unlock()

	ctx, ok := self.contexts[key]
	if !ok {
		return DrawStepResponse{}, false, nil
	}
	expanded := NewList[ExpandedNode](count)
	finished := !ctx.alg.Steps(count, func(node routing.SearchNode) {
		expanded.Add(ExpandedNode{Point: node.Point, Route: node.Route, G: node.G, H: node.H})
	})
	resp := DrawStepResponse{
		Key:         key,
		Finished:    finished,
		Expanded:    expanded,
		OpenCount:   ctx.alg.OpenCount(),
		ClosedCount: ctx.alg.ClosedCount(),
	}
	if finished {
		self.contexts.Delete(key)
		result, err := ctx.alg.GetResult()
		if err != nil {
			return resp, true, err
		}
		routing_resp := NewRoutingResponse(ctx.g, result)
		resp.Result = &routing_resp
	}
	return resp, true, nil
}
