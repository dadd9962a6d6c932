package main

import (
	"strings"
	"testing"

	"golang.org/x/exp/slog"
)

func TestParseConfig(t *testing.T) {
	data := `
log-level: debug
mode: server
server:
  address: ":8080"
maps:
  small:
    type: text
    points: points.txt
    routes: routes.txt
  town:
    type: osm
    file: town.osm.pbf
    cache: false
`
	config, err := ParseConfig([]byte(data))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if config.Mode != SERVER || config.Server.Address != ":8080" || config.Level() != slog.LevelDebug {
		t.Errorf("config = %+v", config)
	}
	if config.DefaultMap != "small" {
		t.Errorf("default map = %v; want small", config.DefaultMap)
	}
	if config.CacheDir != "./cache" {
		t.Errorf("cache dir = %v; want default", config.CacheDir)
	}

	text, ok := config.Maps["small"].Value.(TextMapOptions)
	if !ok || text.Points != "points.txt" || text.Routes != "routes.txt" {
		t.Errorf("small = %#v", config.Maps["small"].Value)
	}
	osm, ok := config.Maps["town"].Value.(OSMMapOptions)
	if !ok || osm.File != "town.osm.pbf" || osm.Cache || osm.Decoder != DRIVING {
		t.Errorf("town = %#v", config.Maps["town"].Value)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	config, err := ParseConfig([]byte("maps:\n  a:\n    type: osm\n    file: a.osm\n"))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if config.Mode != CONSOLE || config.Server.Address != ":5002" || config.Level() != slog.LevelInfo {
		t.Errorf("config = %+v", config)
	}
	if !config.Maps["a"].Value.(OSMMapOptions).Cache {
		t.Errorf("osm cache should be enabled by default")
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		msg  string
	}{
		{"no maps", "mode: console\n", "does not define any map"},
		{"unknown type", "maps:\n  a:\n    type: csv\n", "unknown map type"},
		{"missing type", "maps:\n  a:\n    file: a.osm\n", "map type missing"},
		{"text without routes", "maps:\n  a:\n    type: text\n    points: p.txt\n", "points and a routes file"},
		{"osm without file", "maps:\n  a:\n    type: osm\n", "needs a file"},
		{"unknown mode", "mode: gui\nmaps:\n  a:\n    type: osm\n    file: a.osm\n", "unknown run mode"},
		{"unknown decoder", "maps:\n  a:\n    type: osm\n    file: a.osm\n    decoder: boat\n", "unknown decoder type"},
		{"unknown default", "default-map: b\nmaps:\n  a:\n    type: osm\n    file: a.osm\n", "default map"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error = %v; want %q", err, tt.msg)
			}
		})
	}
}

func TestReadConfig(t *testing.T) {
	config, err := ReadConfig("config.yaml")
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if config.DefaultMap != "sample" {
		t.Errorf("default map = %v; want sample", config.DefaultMap)
	}
	if _, err := ReadConfig("missing.yaml"); err == nil {
		t.Errorf("missing config file should fail")
	}
}
