package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/ttpr0/go-catchment/geo"
	"github.com/ttpr0/go-catchment/report"
	. "github.com/ttpr0/go-catchment/util"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

// Reads and validates the config file, .toml files are read as toml and
// everything else as yaml. Panics on invalid configs.
func ReadConfig(file string) Config {
	slog.Info("Reading config file " + file)
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Error("failed to read config file: " + err.Error())
		panic(err)
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(file), ".toml") {
		format = "toml"
	}
	config, err := ParseConfig(data, format)
	if err != nil {
		slog.Error("invalid config file: " + err.Error())
		panic(err)
	}
	return config
}

func ParseConfig(data []byte, format string) (Config, error) {
	config := DefaultConfig()
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &config)
	case "toml":
		err = toml.Unmarshal(data, &config)
	default:
		err = fmt.Errorf("unknown config format %q", format)
	}
	if err != nil {
		return config, err
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

type Config struct {
	Source     SourceOptions                     `yaml:"source" toml:"source"`
	Origins    string                            `yaml:"origins" toml:"origins" validate:"required"`
	Facilities string                            `yaml:"facilities" toml:"facilities" validate:"required"`
	Metadata   Dict[string, report.FacilityInfo] `yaml:"facility-info" toml:"facility-info"`
	Routing    RoutingOptions                    `yaml:"routing" toml:"routing"`
	Output     OutputOptions                     `yaml:"output" toml:"output"`
	Server     ServerOptions                     `yaml:"server" toml:"server"`
	LogLevel   LogLevel                          `yaml:"log-level" toml:"log-level"`
}

type SourceOptions struct {
	OSM string `yaml:"osm" toml:"osm" validate:"required"`
	// degrees added around the sites when cropping the network
	Margin float64 `yaml:"margin" toml:"margin" validate:"gte=0,lte=10"`
	// keep parts of the network not connected to the largest component
	RetainAll bool `yaml:"retain-all" toml:"retain-all"`
}

type RoutingOptions struct {
	// 0 uses one worker per cpu
	Workers int `yaml:"workers" toml:"workers" validate:"gte=0"`
}

type OutputOptions struct {
	Dir     string    `yaml:"dir" toml:"dir" validate:"required"`
	HTML    bool      `yaml:"html" toml:"html"`
	Archive bool      `yaml:"archive" toml:"archive"`
	Center  []float64 `yaml:"center" toml:"center" validate:"omitempty,len=2"`
	Zoom    int       `yaml:"zoom" toml:"zoom" validate:"gte=0,lte=20"`
	// nearest facility of every network node
	NodeCatchment bool `yaml:"node-catchment" toml:"node-catchment"`
}

type ServerOptions struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Address string `yaml:"address" toml:"address" validate:"required_if=Enabled true"`
}

func DefaultConfig() Config {
	return Config{
		Source:   SourceOptions{Margin: 0.01},
		Metadata: NewDict[string, report.FacilityInfo](0),
		Output:   OutputOptions{Dir: "./out", HTML: true, Zoom: 12},
		Server:   ServerOptions{Address: ":5002"},
		LogLevel: INFO,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (self Config) Validate() error {
	return validate.Struct(self)
}

func (self Config) ReportOptions() report.Options {
	options := report.Options{
		HTML:    self.Output.HTML,
		Archive: self.Output.Archive,
		Zoom:    self.Output.Zoom,
	}
	if len(self.Output.Center) == 2 {
		options.Center = Some(geo.Coord{self.Output.Center[0], self.Output.Center[1]})
	}
	return options
}

//**********************************************************
// enums
//**********************************************************

type LogLevel byte

const (
	DEBUG LogLevel = 0
	INFO  LogLevel = 1
	WARN  LogLevel = 2
	ERROR LogLevel = 3
)

func (self LogLevel) String() string {
	switch self {
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case WARN:
		return "warn"
	case ERROR:
		return "error"
	default:
		panic("unknown log level")
	}
}
func (self LogLevel) Level() slog.Level {
	switch self {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
func (self LogLevel) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *LogLevel) UnmarshalYAML(value *yaml.Node) error {
	level, err := LogLevelFromString(value.Value)
	if err != nil {
		return err
	}
	*self = level
	return nil
}
func (self LogLevel) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}
func (self *LogLevel) UnmarshalText(data []byte) error {
	level, err := LogLevelFromString(string(data))
	if err != nil {
		return err
	}
	*self = level
	return nil
}

func LogLevelFromString(s string) (LogLevel, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	default:
		return INFO, errors.New("unknown log level")
	}
}
