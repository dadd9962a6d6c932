package geo

import "math"

// mean earth radius in km
const EARTH_RADIUS = 6371.0

// Distance returns the great-circle distance between a and b in km.
//
// Haversine formula on a sphere of EARTH_RADIUS.
func Distance(a, b Coord) float64 {
	lat1 := a.Lat() * math.Pi / 180
	lat2 := b.Lat() * math.Pi / 180
	d_lat := lat2 - lat1
	d_lon := (b.Lon() - a.Lon()) * math.Pi / 180

	h := math.Sin(d_lat/2)*math.Sin(d_lat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(d_lon/2)*math.Sin(d_lon/2)
	if h > 1 {
		h = 1
	}
	return 2 * EARTH_RADIUS * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// PathLength sums the distances between consecutive coordinates.
func PathLength(coords CoordArray) float64 {
	length := 0.0
	for i := 1; i < len(coords); i++ {
		length += Distance(coords[i-1], coords[i])
	}
	return length
}
