package parser

import (
	"fmt"

	. "github.com/ttpr0/go-planner/util"
)

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
	DecodeNode(id int64, tags Dict[string, string]) string
	DecodeWay(id int64, tags Dict[string, string]) string
}

type DrivingDecoder struct {
}

var driving_types = Dict[string, bool]{"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true, "secondary": true, "secondary_link": true, "tertiary": true, "tertiary_link": true,
	"residential": true, "living_street": true, "service": true, "track": true, "unclassified": true, "road": true}

func (self *DrivingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if !driving_types.ContainsKey(tags.Get("highway")) {
		return false
	}
	if tags.Get("area") == "yes" || tags.Get("access") == "no" {
		return false
	}
	return true
}

// Returns the name of a junction.
func (self *DrivingDecoder) DecodeNode(id int64, tags Dict[string, string]) string {
	if name := _FirstTag(tags, "name"); name != "" {
		return name
	}
	return fmt.Sprintf("node %v", id)
}

// Returns the name of a road.
func (self *DrivingDecoder) DecodeWay(id int64, tags Dict[string, string]) string {
	if name := _FirstTag(tags, "name", "ref"); name != "" {
		return name
	}
	if typ := tags.Get("highway"); typ != "" {
		return _FormatRoadType(typ)
	}
	return fmt.Sprintf("way %v", id)
}
