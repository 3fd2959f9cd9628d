package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps each command-line flag onto its configuration key.
var flagKeys = map[string]string{
	"interval-seconds": "interval_seconds",
	"radius":           "jitter_radius_pixels",
	"mode":             "mode",
	"glide":            "glide",
	"max-retries":      "max_retries",
	"skip-when-active": "skip_when_active",
	"failsafe":         "failsafe",
	"click":            "click_after_move",
	"stop-timeout":     "stop_timeout",
	"duration":         "duration",
	"clock":            "clock",
	"headless":         "headless",
	"seed":             "seed",
	"top-right-zone":   "avoidance_zone_sizes.top_right",
	"start-menu-zone":  "avoidance_zone_sizes.start_menu",
	"taskbar-height":   "avoidance_zone_sizes.taskbar_height",
	"taskbar-edge":     "avoidance_zone_sizes.taskbar_edge",
	"corner-guard":     "avoidance_zone_sizes.corner_guard",
	"log-level":        "logger.level",
	"log-file":         "logger.log_file",
}

// AddFlags defines the jiggle flags on fs. Flag defaults only document the
// behavior; the effective defaults come from SetDefaults.
func AddFlags(fs *pflag.FlagSet) {
	fs.Float64P("interval-seconds", "i", 5, "Seconds between cursor nudges")
	fs.IntP("radius", "r", 3, "Maximum jitter distance in pixels")
	fs.StringP("mode", "m", "jitter", "Movement mode: jitter or random")
	fs.Duration("glide", 250*time.Millisecond, "Spread each move over this long (0 moves instantly)")
	fs.Int("max-retries", 5, "Resamples before falling back to the screen center")
	fs.Bool("skip-when-active", true, "Leave the cursor alone while someone is using it")
	fs.Bool("failsafe", true, "Stop when the cursor is parked at the top-left corner")
	fs.Bool("click", false, "Left-click after each move (never inside an avoidance zone)")
	fs.Duration("stop-timeout", 5*time.Second, "How long shutdown waits for the jiggler to stop")
	fs.StringP("duration", "d", "", "Run for this long (e.g. \"150\" or \"2h30m\")")
	fs.StringP("clock", "c", "", "Run until this time (e.g. \"22:00\" or \"10:00PM\")")
	fs.Bool("headless", false, "Run without the terminal UI")
	fs.Int64("seed", 0, "Fix the random source (0 seeds from the clock)")
	fs.String("top-right-zone", "120x40", "Window controls zone size, WIDTHxHEIGHT")
	fs.String("start-menu-zone", "60x40", "Start menu zone size, WIDTHxHEIGHT")
	fs.Int("taskbar-height", 40, "Taskbar thickness in pixels")
	fs.String("taskbar-edge", "bottom", "Screen edge holding the taskbar: bottom, top, left or right")
	fs.Int("corner-guard", 4, "Size of the no-go square at the failsafe corner")
	fs.String("log-level", "info", "Log level: debug, info, warn or error")
	fs.String("log-file", "", "Write JSON logs to this file (default jiggle.log with the UI)")
}

// BindFlags binds every flag defined by AddFlags to its key in v, so a flag
// only overrides the file and environment when set explicitly.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			return fmt.Errorf("flag --%s is not defined", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}
