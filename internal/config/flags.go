package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagNoVSync    = flag.Bool("no-vsync", false, "Disable vertical sync")
	flagLookAt     = flag.String("lookat", "", "Camera override: ex,ey,ez,cx,cy,cz,ux,uy,uz")
	flagOutput     = flag.String("output", "", "Render a single frame to this image file and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagNoVSync {
		cfg.Graphics.VSync = false
	}
	if *flagOutput != "" {
		cfg.Output = *flagOutput
	}
	if *flagLookAt != "" {
		lookAt, err := ParseLookAt(*flagLookAt)
		if err != nil {
			return fmt.Errorf("invalid -lookat: %w", err)
		}
		cfg.LookAt = &lookAt
	}
	cfg.ScenePath = flag.Arg(0)
	return nil
}

// ParseLookAt parses a comma-separated camera override of nine floats:
// eye.xyz, center.xyz, up.xyz.
func ParseLookAt(s string) ([9]float32, error) {
	var vals [9]float32

	parts := strings.Split(s, ",")
	if len(parts) != 9 {
		return vals, fmt.Errorf("expected 9 comma-separated values, got %d", len(parts))
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return vals, fmt.Errorf("value %d (%q): %w", i+1, p, err)
		}
		vals[i] = float32(f)
	}
	return vals, nil
}
