package config

import (
	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/trace"
	"github.com/teleios/teleios/internal/tstring"
)

// DisplayResolution is the width/height pair a display-resolution enum
// resolves to: width one of 480/720/1080/1440/2160, height width*9/16.
type DisplayResolution struct {
	Width, Height int
}

var resolutionWidths = map[string]int{
	"SD":  480,
	"HD":  720,
	"FHD": 1080,
	"QHD": 1440,
	"UHD": 2160,
}

// enumSuffix upper-cases v and returns the text after its last underscore,
// so a fully qualified enum name like "TL_LOG_LEVEL_VERBOSE" and a bare
// "VERBOSE" both resolve the same way.
func enumSuffix(v string) string {
	upper := tstring.Wrap(v).ToUpper(nil)

	idx := upper.LastIndexOfChar('_')
	if idx < 0 {
		return upper.String()
	}

	return upper.Slice(nil, idx+1, upper.Length()-idx-1).String()
}

// GetLogLevel resolves path's enum suffix to a logx.Level, falling back to
// def when the key is absent or its value does not match a known level
// name.
func (c *Config) GetLogLevel(path string, def logx.Level) logx.Level {
	defer trace.Enter("Config.GetLogLevel(path=%q)", path)()

	raw, ok := c.Get(path)
	if !ok {
		return def
	}

	lvl, ok := logx.ParseLevel(enumSuffix(raw))
	if !ok {
		logx.Warnf("config: unrecognized log level %q at %q, using default", raw, path)

		return def
	}

	return lvl
}

// GetDisplayResolution resolves path's enum suffix to a DisplayResolution,
// falling back to def when the key is absent or unrecognized.
func (c *Config) GetDisplayResolution(path string, def DisplayResolution) DisplayResolution {
	defer trace.Enter("Config.GetDisplayResolution(path=%q)", path)()

	raw, ok := c.Get(path)
	if !ok {
		return def
	}

	width, ok := resolutionWidths[enumSuffix(raw)]
	if !ok {
		logx.Warnf("config: unrecognized display resolution %q at %q, using default", raw, path)

		return def
	}

	return DisplayResolution{Width: width, Height: width * 9 / 16}
}
