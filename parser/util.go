package parser

import (
	"path/filepath"
	"strings"

	. "github.com/ttpr0/go-planner/util"
)

//*******************************************
// utility methods
//*******************************************

func _FirstTag(tags Dict[string, string], keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(tags.Get(key)); len(value) >= 2 {
			return value
		}
	}
	return ""
}

// "motorway_link" -> "motorway link"
func _FormatRoadType(typ string) string {
	return strings.ReplaceAll(typ, "_", " ")
}

type OSMFormat int

const (
	OSM_XML OSMFormat = iota
	OSM_PBF
	OSM_UNKNOWN
)

func _FormatFromFile(file string) OSMFormat {
	name := strings.ToLower(filepath.Base(file))
	switch {
	case strings.HasSuffix(name, ".pbf"):
		return OSM_PBF
	case strings.HasSuffix(name, ".osm"), strings.HasSuffix(name, ".xml"):
		return OSM_XML
	}
	return OSM_UNKNOWN
}
