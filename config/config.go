package config

import (
	"fmt"
	"os"
	"time"

	"github.com/tyboard/tycore/halfkay"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable that tycore would otherwise hardcode.
type Config struct {
	// DropDelay is how long a board is kept in the missing state after its
	// last interface disappears, before being dropped for good.
	DropDelay time.Duration `yaml:"dropDelay"`

	// Timing is the HalfKay protocol's retry/erase/block pacing.
	Timing halfkay.Timing `yaml:"timing"`

	// AllowExperimentalBoards gates uploads to models marked Experimental.
	// It mirrors the original's TY_EXPERIMENTAL_BOARDS environment
	// variable; see FromEnvironment.
	AllowExperimentalBoards bool `yaml:"allowExperimentalBoards"`

	// InterfaceTableCapacity is an initial-size hint for a device-to-interface
	// map, not a limit. monitor.New does not take a Config; it always sizes
	// its own map at 64 entries.
	InterfaceTableCapacity int `yaml:"interfaceTableCapacity"`
}

const defaultInterfaceTableCapacity = 64
const defaultDropDelay = 15000 * time.Millisecond

// Default returns the configuration tycore used before config.Config
// existed: a 15-second drop delay, the HalfKay defaults, experimental
// boards disabled, and a 64-entry interface table.
func Default() Config {
	return Config{
		DropDelay:               defaultDropDelay,
		Timing:                  halfkay.DefaultTiming(),
		AllowExperimentalBoards: false,
		InterfaceTableCapacity:  defaultInterfaceTableCapacity,
	}
}

const experimentalBoardsEnv = "TY_EXPERIMENTAL_BOARDS"

// FromEnvironment starts from Default and enables AllowExperimentalBoards
// if TY_EXPERIMENTAL_BOARDS is set to any non-empty value; an empty value
// leaves it disabled.
func FromEnvironment() Config {
	cfg := Default()
	if os.Getenv(experimentalBoardsEnv) != "" {
		cfg.AllowExperimentalBoards = true
	}
	return cfg
}

// Load overlays a YAML file's fields onto base, returning the result. Only
// fields present in the file are overwritten; absent fields keep base's
// values, so callers should start from Default or FromEnvironment rather
// than an empty Config. Durations are written as strings such as "5s".
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
