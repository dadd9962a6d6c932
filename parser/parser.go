package parser

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/ttpr0/go-planner/geo"
	"github.com/ttpr0/go-planner/graph"
	. "github.com/ttpr0/go-planner/util"
)

// ParseOSM imports the road network of an .osm or .osm.pbf file.
//
// Ways accepted by the decoder are split at junctions, nodes shared by more
// than one way or ending a way. Every junction becomes a point "#<node id>",
// every piece of a way a route "&<way id>-<n>" measured along its geometry.
func ParseOSM(file string, decoder IOSMDecoder) (*graph.Map, error) {
	return ParseOSMContext(context.Background(), file, decoder)
}

func ParseOSMContext(ctx context.Context, file string, decoder IOSMDecoder) (*graph.Map, error) {
	format := _FormatFromFile(file)
	if format == OSM_UNKNOWN {
		return nil, &LoadError{File: file, Reason: "unknown osm file format"}
	}

	ways := NewList[_OSMWay](1000)
	osm_nodes := NewDict[int64, _OSMNode](10000)

	scanner, err := _OpenScanner(ctx, file, format, true)
	if err != nil {
		return nil, err
	}
	_WayHandler(scanner, decoder, &ways, osm_nodes)
	if err := _CloseScanner(file, scanner); err != nil {
		return nil, err
	}

	scanner, err = _OpenScanner(ctx, file, format, false)
	if err != nil {
		return nil, err
	}
	_NodeHandler(scanner, decoder, osm_nodes)
	if err := _CloseScanner(file, scanner); err != nil {
		return nil, err
	}

	points, routes := _SplitWays(ways, osm_nodes)
	m, err := graph.NewMap(points, routes)
	if err != nil {
		return nil, &LoadError{File: file, Reason: err.Error(), Err: err}
	}
	return m, nil
}

//*******************************************
// scanner
//*******************************************

type _Scanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

type _FileScanner struct {
	_Scanner
	file *os.File
}

func (self *_FileScanner) Close() error {
	err := self._Scanner.Close()
	if ferr := self.file.Close(); err == nil {
		err = ferr
	}
	return err
}

func _OpenScanner(ctx context.Context, filename string, format OSMFormat, only_ways bool) (_Scanner, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &LoadError{File: filename, Reason: err.Error(), Err: err}
	}
	switch format {
	case OSM_PBF:
		scanner := osmpbf.New(ctx, file, runtime.GOMAXPROCS(-1))
		scanner.SkipRelations = true
		if only_ways {
			scanner.SkipNodes = true
		} else {
			scanner.SkipWays = true
		}
		return &_FileScanner{scanner, file}, nil
	default:
		return &_FileScanner{osmxml.New(ctx, file), file}, nil
	}
}

func _CloseScanner(filename string, scanner _Scanner) error {
	err := scanner.Err()
	if cerr := scanner.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &LoadError{File: filename, Reason: err.Error(), Err: err}
	}
	return nil
}

//*******************************************
// osm handler methods
//*******************************************

func _WayHandler(scanner _Scanner, decoder IOSMDecoder, ways *List[_OSMWay], osm_nodes Dict[int64, _OSMNode]) {
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			l := len(object.Nodes)
			if l < 2 {
				continue
			}
			nodes := make([]int64, l)
			for i, ndref := range object.Nodes {
				id := int64(ndref.ID)
				nodes[i] = id
				node := osm_nodes[id]
				node.Count += 1
				osm_nodes[id] = node
			}
			// way ends are always junctions
			for _, id := range [2]int64{nodes[0], nodes[l-1]} {
				node := osm_nodes[id]
				node.Count += 1
				osm_nodes[id] = node
			}
			way_id := int64(object.ID)
			ways.Add(_OSMWay{
				ID:    way_id,
				Name:  decoder.DecodeWay(way_id, tags),
				Nodes: nodes,
			})
		default:
			continue
		}
	}
}

func _NodeHandler(scanner _Scanner, decoder IOSMDecoder, osm_nodes Dict[int64, _OSMNode]) {
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			id := int64(object.ID)
			node, ok := osm_nodes[id]
			if !ok {
				continue
			}
			node.Point = geo.NewCoord(object.Lat, object.Lon)
			node.Found = true
			if node.Count > 1 {
				node.Name = decoder.DecodeNode(id, Dict[string, string](object.TagMap()))
			}
			osm_nodes[id] = node
		default:
			continue
		}
	}
}

// Ways referencing nodes missing from the file are dropped.
func _SplitWays(ways List[_OSMWay], osm_nodes Dict[int64, _OSMNode]) ([]graph.Point, []graph.Route) {
	points := NewList[graph.Point](100)
	routes := NewList[graph.Route](ways.Length())
	point_ids := NewDict[int64, string](100)

	add_point := func(id int64) string {
		if pid, ok := point_ids[id]; ok {
			return pid
		}
		node := osm_nodes[id]
		pid := fmt.Sprintf("%c%v", graph.POINT_PREFIX, id)
		points.Add(graph.Point{ID: pid, Name: node.Name, Coord: node.Point})
		point_ids[id] = pid
		return pid
	}

	for _, way := range ways {
		if !_HasAllNodes(way, osm_nodes) {
			continue
		}
		start := way.Nodes[0]
		geom := NewList[geo.Coord](len(way.Nodes))
		geom.Add(osm_nodes[start].Point)
		n := 1
		for i := 1; i < len(way.Nodes); i++ {
			curr := way.Nodes[i]
			node := osm_nodes[curr]
			geom.Add(node.Point)
			if node.Count <= 1 {
				continue
			}
			routes.Add(graph.Route{
				ID:        fmt.Sprintf("%c%v-%v", graph.ROUTE_PREFIX, way.ID, n),
				Name:      way.Name,
				Endpoints: [2]string{add_point(start), add_point(curr)},
				Length:    geo.PathLength(geo.CoordArray(geom)),
			})
			n += 1
			start = curr
			geom = NewList[geo.Coord](len(way.Nodes) - i)
			geom.Add(node.Point)
		}
	}
	return points, routes
}

func _HasAllNodes(way _OSMWay, osm_nodes Dict[int64, _OSMNode]) bool {
	for _, id := range way.Nodes {
		if !osm_nodes[id].Found {
			return false
		}
	}
	return true
}
