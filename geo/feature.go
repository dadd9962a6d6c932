package geo

import (
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"
)

//*******************************************
// export
//*******************************************

func NewLineFeature(coords CoordArray, props map[string]any) *geojson.Feature {
	feature := geojson.NewFeature(coords.ToLineString())
	for k, v := range props {
		feature.Properties[k] = v
	}
	return feature
}

func NewPointFeature(coord Coord, props map[string]any) *geojson.Feature {
	feature := geojson.NewFeature(coord.ToPoint())
	for k, v := range props {
		feature.Properties[k] = v
	}
	return feature
}

// EncodePolyline returns the coords in the encoded polyline format (lat/lon order, 5 digits).
func EncodePolyline(coords CoordArray) string {
	values := make([][]float64, len(coords))
	for i, c := range coords {
		values[i] = []float64{c.Lat(), c.Lon()}
	}
	return string(polyline.EncodeCoords(values))
}
