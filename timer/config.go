package timer

import (
	"encoding/json"
	"image/color"
	"log"
)

// AppContentReader defines the interface for reading content from the embedded file system.
type AppContentReader interface {
	ReadFile(name string) ([]byte, error)
}

// Entry field clamp bounds. The text itself may hold anything; these apply
// only when the text is converted to a duration.
const (
	MaxMinutes = 99
	MaxSeconds = 59
)

// UI constants
const (
	FontSizeTime  float32 = 64.0 // Time display
	FontSizeLabel float32 = 14.0 // Field labels

	// Dimensions
	WindowWidth       = 320
	WindowHeight      = 240
	EntryWidth        = 90
	ControlButtonsGap = 5
	CornerRadius      = 10.0
)

var (
	// BackgroundColor is the base background color for the display panel.
	BackgroundColor = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
	// FinishedColor tints the time display once the countdown completes.
	FinishedColor = color.NRGBA{R: 0xe5, G: 0x4b, B: 0x4b, A: 0xff}
)

// AppConfig holds the static application configuration.
type AppConfig struct {
	AudioFilename string
	TickSeconds   int
	WindowTitle   string
}

// DefaultAppConfig is used when the embedded config is missing or invalid.
var DefaultAppConfig = AppConfig{
	AudioFilename: "alert.ogg",
	TickSeconds:   1,
	WindowTitle:   "Kitchen Timer",
}

// LoadAppConfig loads the application configuration from the embedded JSON
// file, falling back to DefaultAppConfig on any problem.
func LoadAppConfig(reader AppContentReader) AppConfig {
	data, err := reader.ReadFile("assets/timer_config.json")
	if err != nil {
		log.Printf("Failed to read app config, using defaults: %v", err)
		return DefaultAppConfig
	}

	cfg := DefaultAppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("Failed to unmarshal app config, using defaults: %v", err)
		return DefaultAppConfig
	}
	if cfg.TickSeconds <= 0 {
		cfg.TickSeconds = DefaultAppConfig.TickSeconds
	}
	return cfg
}
