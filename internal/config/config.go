// Package config loads server settings from the environment.
//
// An optional .env file is read first with godotenv; variables already set
// in the process environment take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/raster-tools-mcp/internal/edit"
	"github.com/ironsheep/raster-tools-mcp/internal/raster"
	"github.com/ironsheep/raster-tools-mcp/internal/view"
)

// Environment variable names.
const (
	EnvLogLevel     = "RASTER_MCP_LOG_LEVEL"
	EnvHeaderOffset = "RASTER_MCP_HEADER_OFFSET"
	EnvWidth        = "RASTER_MCP_WIDTH"
	EnvHeight       = "RASTER_MCP_HEIGHT"
	EnvPixelStride  = "RASTER_MCP_PIXEL_STRIDE"
	EnvViewport     = "RASTER_MCP_VIEWPORT"
	EnvHistory      = "RASTER_MCP_HISTORY"
)

// DefaultViewport is the viewport used until a client reports its own.
var DefaultViewport = view.Size{Width: 800, Height: 600}

// Config holds the server settings.
type Config struct {
	// LogLevel is "debug" to enable debug logging; anything else is quiet.
	LogLevel string

	// Layout is the decode layout used when a load request names none.
	Layout raster.Layout

	// Viewport is the initial viewport size.
	Viewport view.Size

	// HistoryCapacity bounds the undo history.
	HistoryCapacity int
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Layout:          raster.DefaultLayout,
		Viewport:        DefaultViewport,
		HistoryCapacity: edit.DefaultHistoryCapacity,
	}
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// Load reads the given .env files (".env" when none are named), then builds
// a Config from the environment. Missing .env files are not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config using lookup to read variables. Unset or empty
// variables keep their defaults.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = strings.TrimSpace(v)
	}

	ints := []struct {
		name string
		dst  *int
		min  int
	}{
		{EnvHeaderOffset, &cfg.Layout.HeaderOffset, 0},
		{EnvWidth, &cfg.Layout.Width, 1},
		{EnvHeight, &cfg.Layout.Height, 1},
		{EnvPixelStride, &cfg.Layout.PixelStride, 4},
		{EnvHistory, &cfg.HistoryCapacity, 1},
	}
	for _, f := range ints {
		v, ok := lookup(f.name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", f.name, err)
		}
		if n < f.min {
			return Config{}, fmt.Errorf("%s: %d is below the minimum %d", f.name, n, f.min)
		}
		*f.dst = n
	}

	if v, ok := lookup(EnvViewport); ok && strings.TrimSpace(v) != "" {
		size, err := ParseSize(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvViewport, err)
		}
		cfg.Viewport = size
	}

	if err := cfg.Layout.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseSize parses a "WIDTHxHEIGHT" string such as "800x600".
func ParseSize(s string) (view.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return view.Size{}, fmt.Errorf("invalid size %q, expected WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return view.Size{}, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return view.Size{}, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	size := view.Size{Width: width, Height: height}
	if size.Empty() {
		return view.Size{}, fmt.Errorf("size %q must be positive", s)
	}
	return size, nil
}
