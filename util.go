package main

import (
	"os"

	"github.com/ttpr0/go-planner/graph"
	"github.com/ttpr0/go-planner/parser"
	"github.com/ttpr0/go-planner/routing"
	. "github.com/ttpr0/go-planner/util"
)

func _StoreCache(cache_dir, cache_file string, m *graph.Map) error {
	if err := os.MkdirAll(cache_dir, 0o755); err != nil {
		return err
	}
	return WriteGobToFile(m.Export(), cache_file)
}

func GetDecoder(typ DecoderType) parser.IOSMDecoder {
	var decoder parser.IOSMDecoder
	switch typ {
	case DRIVING:
		decoder = &parser.DrivingDecoder{}
	default:
		decoder = &parser.DrivingDecoder{}
	}
	return decoder
}

type AlgorithmFactory func(g graph.IGraph, start, end string) (routing.IShortestPath, error)

func GetAlgorithm(name string) (AlgorithmFactory, bool) {
	switch name {
	case "", "A*", "astar":
		return func(g graph.IGraph, start, end string) (routing.IShortestPath, error) {
			return routing.NewAStar(g, start, end)
		}, true
	case "Dijkstra", "dijkstra":
		return func(g graph.IGraph, start, end string) (routing.IShortestPath, error) {
			return routing.NewDijkstra(g, start, end)
		}, true
	}
	return nil, false
}
