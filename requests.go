package main

type MapRequest struct {
	Map string `json:"map"`
}

type ClosestPointRequest struct {
	Map     string  `json:"map"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	MaxDist float64 `json:"max_dist"`
}

type RoutingRequest struct {
	Map       string `json:"map"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Algorithm string `json:"algorithm"`
}

type DrawContextRequest struct {
	Map       string `json:"map"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Algorithm string `json:"algorithm"`
}

type DrawRoutingRequest struct {
	Key       int `json:"key"`
	Stepcount int `json:"stepcount"`
}
