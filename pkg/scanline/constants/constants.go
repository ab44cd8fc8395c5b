// Package constants defines shared constants, environment variables and
// defaults used throughout scanline.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names.
const (
	EnvironmentEnvVar  = "ENVIRONMENT"
	ConfigEnvVar       = "SCANLINE_CONFIG"
	LogLevelEnvVar     = "SCANLINE_LOG_LEVEL"
	TouchDeviceEnvVar  = "SCANLINE_TOUCH_DEVICE"
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Panel and scheduler defaults, matching a typical 800x480 controller.
const (
	DefaultPanelWidth    = 800
	DefaultPanelHeight   = 480
	DefaultBandHeight    = 10
	DefaultDirtyCapacity = 32
	DefaultStackDepth    = 10
	DefaultAnimSlots     = 8

	DefaultRefreshPeriod   = 30 * time.Millisecond
	DefaultAnimPeriod      = 30 * time.Millisecond
	DefaultDestroyDelay    = 300 * time.Millisecond
	DefaultTransitionTime  = 300 * time.Millisecond
	DefaultTouchDevicePath = "/dev/input/event1"
)
