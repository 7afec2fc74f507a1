// Package config implements a hierarchical YAML configuration loader: a
// block-style tree walk that flattens every scalar into a dotted-path
// property map, plus typed getters over that flat map. The walk mirrors a
// token stream (KEY/SCALAR/BLOCK_MAPPING_START/BLOCK_SEQUENCE_START/
// BLOCK_ENTRY/BLOCK_END) over gopkg.in/yaml.v3's parsed Node tree, since
// yaml.v3 exposes block-structure kinds directly.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/trace"
	"github.com/teleios/teleios/internal/tstring"
)

// knownNamespaces are the top-level property roots the foundation and its
// collaborators recognize; every named path starts with one of these.
// Anything else is recorded in the unknown-key bucket instead of silently
// accepted.
var knownNamespaces = map[string]bool{
	"engine":      true,
	"application": true,
}

// Config is the flattened dotted-path property store a YAML document walks
// into. Values are the raw scalar strings; typed getters parse on read.
type Config struct {
	properties map[string]string
	lists      map[string][]string // ordered values from every element of a sequence, keyed by the sequence's own path
	unknown    []string
}

// Load reads and parses the YAML file at path. A missing or unopenable file
// is fatal: a configuration file must exist for the process to start.
func Load(path string) *Config {
	defer trace.Enter("config.Load(path=%q)", path)()

	data, err := os.ReadFile(path)
	if err != nil {
		logx.Fatalf("config: failed to open %q: %v", path, err)

		return nil
	}

	var root yaml.Node

	if err := yaml.Unmarshal(data, &root); err != nil {
		logx.Fatalf("config: failed to parse %q: %v", path, err)

		return nil
	}

	c := &Config{properties: make(map[string]string), lists: make(map[string][]string)}
	c.walk(&root)

	return c
}

func joinPath(segments []string) string {
	out := ""

	for i, s := range segments {
		if i > 0 {
			out += "."
		}

		out += s
	}

	return out
}

// recordScalar emits one (path, value) pair into the flat map, appends to
// the enclosing sequence's ordered list bucket (seqPath is empty outside
// any sequence), and flags any path whose root namespace is unrecognized.
func (c *Config) recordScalar(pathSegments []string, value string, seqPath string) {
	path := joinPath(pathSegments)
	c.properties[path] = value

	if len(pathSegments) > 0 && !knownNamespaces[pathSegments[0]] {
		logx.Warnf("config: unrecognized property path %q", path)
		c.unknown = append(c.unknown, path)
	}

	if seqPath != "" {
		c.lists[seqPath] = append(c.lists[seqPath], value)
	}
}

// Get returns the raw scalar string at path. ok is false when absent.
func (c *Config) Get(path string) (string, bool) {
	v, ok := c.properties[path]

	return v, ok
}

// List returns the ordered values collected from every element of the
// sequence at path, e.g. "application.scenes.0.name" and
// "application.scenes.1.name" both collected under "application.scenes".
func (c *Config) List(path string) []string {
	return append([]string(nil), c.lists[path]...)
}

// Unknown returns every property path seen whose root namespace is not
// recognized by the foundation, so bootstrap can emit one summary line in
// addition to the per-key WARN that recordScalar logs.
func (c *Config) Unknown() []string {
	return append([]string(nil), c.unknown...)
}

// GetBool matches the upper-cased value against "TRUE".
func (c *Config) GetBool(path string) bool {
	defer trace.Enter("Config.GetBool(path=%q)", path)()

	v, ok := c.properties[path]
	if !ok {
		return false
	}

	return tstring.Wrap(v).ToUpper(nil).String() == "TRUE"
}

// GetI64 parses path as a base-10 signed integer; an absent key yields 0.
func (c *Config) GetI64(path string) int64 {
	defer trace.Enter("Config.GetI64(path=%q)", path)()

	v, ok := c.properties[path]
	if !ok {
		return 0
	}

	n, _ := tstring.ToI64(tstring.Wrap(v), 10)

	return n
}

// GetU64 parses path as a base-10 unsigned integer; an absent key yields 0.
func (c *Config) GetU64(path string) uint64 {
	defer trace.Enter("Config.GetU64(path=%q)", path)()

	v, ok := c.properties[path]
	if !ok {
		return 0
	}

	n, _ := tstring.ToU64(tstring.Wrap(v), 10)

	return n
}

// GetI8/GetI16/GetI32 and GetU8/GetU16/GetU32 are sized views over
// GetI64/GetU64.
func (c *Config) GetI8(path string) int8   { return int8(c.GetI64(path)) }
func (c *Config) GetI16(path string) int16 { return int16(c.GetI64(path)) }
func (c *Config) GetI32(path string) int32 { return int32(c.GetI64(path)) }
func (c *Config) GetU8(path string) uint8   { return uint8(c.GetU64(path)) }
func (c *Config) GetU16(path string) uint16 { return uint16(c.GetU64(path)) }
func (c *Config) GetU32(path string) uint32 { return uint32(c.GetU64(path)) }

// GetF32 parses path as a 32-bit float; an absent key yields 0.
func (c *Config) GetF32(path string) float32 {
	defer trace.Enter("Config.GetF32(path=%q)", path)()

	v, ok := c.properties[path]
	if !ok {
		return 0
	}

	f, _ := tstring.ToF32(tstring.Wrap(v))

	return f
}

// GetF64 parses path as a 64-bit float; an absent key yields 0.
func (c *Config) GetF64(path string) float64 {
	defer trace.Enter("Config.GetF64(path=%q)", path)()

	v, ok := c.properties[path]
	if !ok {
		return 0
	}

	f, _ := tstring.ToF64(tstring.Wrap(v))

	return f
}
