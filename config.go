package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	. "github.com/ttpr0/go-planner/util"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) (Config, error) {
	slog.Info("Reading config file", "file", file)
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	config := Config{
		LogLevel: "info",
		Mode:     CONSOLE,
		CacheDir: "./cache",
	}
	config.Server.Address = ":5002"
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Maps.Length() == 0 {
		return Config{}, errors.New("config does not define any map")
	}
	if config.DefaultMap == "" {
		config.DefaultMap = SortedKeys(config.Maps)[0]
	}
	if !config.Maps.ContainsKey(config.DefaultMap) {
		return Config{}, fmt.Errorf("default map %q is not defined", config.DefaultMap)
	}
	return config, nil
}

type Config struct {
	LogLevel string `yaml:"log-level"`
	Mode     RunMode `yaml:"mode"`
	Server   struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	CacheDir   string                    `yaml:"cache-dir"`
	DefaultMap string                    `yaml:"default-map"`
	Maps       Dict[string, *MapOptions] `yaml:"maps"`
}

func (self Config) Level() slog.Level {
	switch strings.ToLower(self.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

//**********************************************************
// map options
//**********************************************************

type MapOptions struct {
	Value IMapOptions
}

func (self *MapOptions) UnmarshalYAML(value *yaml.Node) error {
	m := map[string]interface{}{}
	if err := value.Decode(&m); err != nil {
		return err
	}
	name, ok := m["type"].(string)
	if !ok {
		return fmt.Errorf("line %v: map type missing", value.Line)
	}
	typ, err := MapTypeFromString(name)
	if err != nil {
		return fmt.Errorf("line %v: %w", value.Line, err)
	}
	switch typ {
	case TEXT_MAP:
		val := TextMapOptions{}
		if err := value.Decode(&val); err != nil {
			return err
		}
		if val.Points == "" || val.Routes == "" {
			return fmt.Errorf("line %v: text map needs a points and a routes file", value.Line)
		}
		self.Value = val
	case OSM_MAP:
		val := OSMMapOptions{Cache: true}
		if err := value.Decode(&val); err != nil {
			return err
		}
		if val.File == "" {
			return fmt.Errorf("line %v: osm map needs a file", value.Line)
		}
		self.Value = val
	}
	return nil
}

type IMapOptions interface {
	Type() MapType
}

type TextMapOptions struct {
	Points string `yaml:"points"`
	Routes string `yaml:"routes"`
}

func (self TextMapOptions) Type() MapType {
	return TEXT_MAP
}

type OSMMapOptions struct {
	File    string      `yaml:"file"`
	Decoder DecoderType `yaml:"decoder"`
	Cache   bool        `yaml:"cache"`
}

func (self OSMMapOptions) Type() MapType {
	return OSM_MAP
}

//**********************************************************
// enums
//**********************************************************

type MapType byte

const (
	TEXT_MAP MapType = 0
	OSM_MAP  MapType = 1
)

func (self MapType) String() string {
	switch self {
	case TEXT_MAP:
		return "text"
	case OSM_MAP:
		return "osm"
	default:
		panic("unknown map type")
	}
}
func (self MapType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}

func MapTypeFromString(s string) (MapType, error) {
	switch s {
	case "text":
		return TEXT_MAP, nil
	case "osm":
		return OSM_MAP, nil
	default:
		return TEXT_MAP, fmt.Errorf("unknown map type %q", s)
	}
}

type RunMode byte

const (
	CONSOLE RunMode = 0
	SERVER  RunMode = 1
)

func (self RunMode) String() string {
	switch self {
	case CONSOLE:
		return "console"
	case SERVER:
		return "server"
	default:
		panic("unknown run mode")
	}
}
func (self RunMode) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *RunMode) UnmarshalYAML(value *yaml.Node) error {
	mode, err := RunModeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = mode
	return nil
}

func RunModeFromString(s string) (RunMode, error) {
	switch s {
	case "console":
		return CONSOLE, nil
	case "server":
		return SERVER, nil
	default:
		return CONSOLE, fmt.Errorf("unknown run mode %q", s)
	}
}

type DecoderType byte

const (
	DRIVING DecoderType = 0
)

func (self DecoderType) String() string {
	switch self {
	case DRIVING:
		return "driving"
	default:
		panic("unknown decoder type")
	}
}
func (self DecoderType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *DecoderType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := DecoderTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func DecoderTypeFromString(s string) (DecoderType, error) {
	switch s {
	case "driving", "":
		return DRIVING, nil
	default:
		return DRIVING, fmt.Errorf("unknown decoder type %q", s)
	}
}
