// Package config collects the tunables that the rest of tycore otherwise
// hardcodes: missing-board grace period, HalfKay protocol timing, the
// experimental-boards gate, and the interface table's initial capacity.
//
// Default reproduces the original constants so callers that never touch
// config get identical behavior. FromEnvironment overlays the
// TY_EXPERIMENTAL_BOARDS environment variable, the one runtime knob the
// original exposed outside of source. Load overlays a YAML file on top of
// whichever of those the caller already built.
package config
