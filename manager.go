package main

import (
	"fmt"
	"path/filepath"

	"github.com/ttpr0/go-planner/graph"
	"github.com/ttpr0/go-planner/parser"
	. "github.com/ttpr0/go-planner/util"
	"golang.org/x/exp/slog"
)

// MapManager holds the maps loaded at start-up, they are never modified afterwards.
type MapManager struct {
	maps        Dict[string, *graph.Map]
	indexes     Dict[string, *graph.PointIndex]
	default_map string
}

func NewMapManager(config Config) (*MapManager, error) {
	maps := NewDict[string, *graph.Map](config.Maps.Length())
	for _, name := range SortedKeys(config.Maps) {
		options := config.Maps[name]
		if options == nil || options.Value == nil {
			continue
		}
		slog.Info("Loading map", "name", name, "type", options.Value.Type().String())
		m, err := _LoadMap(name, options.Value, config.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load map %v: %w", name, err)
		}
		slog.Info("Map loaded", "name", name, "points", m.PointCount(), "routes", m.RouteCount())
		maps[name] = m
	}
	return NewMapManagerFromMaps(maps, config.DefaultMap), nil
}

func NewMapManagerFromMaps(maps Dict[string, *graph.Map], default_map string) *MapManager {
	indexes := NewDict[string, *graph.PointIndex](maps.Length())
	for name, m := range maps {
		indexes[name] = graph.NewPointIndex(m)
	}
	return &MapManager{
		maps:        maps,
		indexes:     indexes,
		default_map: default_map,
	}
}

// Returns the named map, the default map for an empty name.
func (self *MapManager) GetMap(name string) Optional[*graph.Map] {
	if name == "" {
		name = self.default_map
	}
	if self.maps.ContainsKey(name) {
		return Some(self.maps.Get(name))
	}
	return None[*graph.Map]()
}

func (self *MapManager) GetIndex(name string) Optional[*graph.PointIndex] {
	if name == "" {
		name = self.default_map
	}
	if self.indexes.ContainsKey(name) {
		return Some(self.indexes.Get(name))
	}
	return None[*graph.PointIndex]()
}

func (self *MapManager) MapNames() List[string] {
	return SortedKeys(self.maps)
}

func (self *MapManager) DefaultMap() string {
	return self.default_map
}

func _LoadMap(name string, options IMapOptions, cache_dir string) (*graph.Map, error) {
	switch opts := options.(type) {
	case TextMapOptions:
		return parser.ParseTextMap(opts.Points, opts.Routes)
	case OSMMapOptions:
		cache_file := filepath.Join(cache_dir, name+".gob")
		if opts.Cache && FileExists(cache_file) {
			data, err := ReadGobFromFile[graph.MapData](cache_file)
			if err == nil {
				slog.Debug("Using cached map", "file", cache_file)
				return graph.NewMapFromData(data)
			}
			slog.Warn("Ignoring unreadable map cache", "file", cache_file, "error", err.Error())
		}
		m, err := parser.ParseOSM(opts.File, GetDecoder(opts.Decoder))
		if err != nil {
			return nil, err
		}
		if opts.Cache {
			if err := _StoreCache(cache_dir, cache_file, m); err != nil {
				slog.Warn("Failed to write map cache", "file", cache_file, "error", err.Error())
			}
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported map options %T", options)
	}
}
