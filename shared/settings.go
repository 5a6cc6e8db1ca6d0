package shared

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/magiconair/properties"
)

const (
	keySegments   = "STORY_SEGMENTS"
	keyDuration   = "STORY_DURATION"
	keyFrontColor = "STORY_FRONT_COLOR"
	keyBackColor  = "STORY_BACK_COLOR"
	keyPadding    = "STORY_PADDING"
	keyLoop       = "STORY_LOOP"

	defaultSegments   = 3
	defaultDuration   = 5 * time.Second
	defaultFrontColor = "#ffffff"
	defaultBackColor  = "#444444"
	defaultPadding    = 2.0
)

// Settings configure the story demo window.
type Settings struct {
	Segments   int
	Duration   time.Duration
	FrontColor color.Color
	BackColor  color.Color
	Padding    float32
	Loop       bool
}

// DefaultSettings returns the values written to a fresh story.properties.
func DefaultSettings() *Settings {
	front, _ := ParseColor(defaultFrontColor)
	back, _ := ParseColor(defaultBackColor)
	return &Settings{
		Segments:   defaultSegments,
		Duration:   defaultDuration,
		FrontColor: front,
		BackColor:  back,
		Padding:    defaultPadding,
	}
}

// LoadSettings reads path, creating it with defaults first if it does not exist.
func LoadSettings(path string) (*Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeDefaultSettings(path); err != nil {
			return nil, err
		}
	}

	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	log.Printf("Loaded properties from %s:", path)
	for _, key := range props.Keys() {
		value, _ := props.Get(key)
		log.Printf("  %s = %s", key, value)
	}

	return settingsFromProperties(props)
}

func settingsFromProperties(props *properties.Properties) (*Settings, error) {
	s := DefaultSettings()

	s.Segments = props.GetInt(keySegments, s.Segments)
	if s.Segments < 1 {
		return nil, fmt.Errorf("%s must be at least 1, got %d", keySegments, s.Segments)
	}
	s.Duration = props.GetParsedDuration(keyDuration, s.Duration)
	s.Padding = float32(props.GetFloat64(keyPadding, float64(s.Padding)))
	if s.Padding < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %v", keyPadding, s.Padding)
	}
	s.Loop = props.GetBool(keyLoop, s.Loop)

	var err error
	if s.FrontColor, err = colorProperty(props, keyFrontColor, defaultFrontColor); err != nil {
		return nil, err
	}
	if s.BackColor, err = colorProperty(props, keyBackColor, defaultBackColor); err != nil {
		return nil, err
	}
	return s, nil
}

func colorProperty(props *properties.Properties, key, def string) (color.Color, error) {
	c, err := ParseColor(props.GetString(key, def))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return c, nil
}

// ParseColor parses "#rgb" or "#rrggbb" into an opaque color.
func ParseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func writeDefaultSettings(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	props := properties.NewProperties()
	props.Set(keySegments, fmt.Sprint(defaultSegments))
	props.Set(keyDuration, defaultDuration.String())
	props.Set(keyFrontColor, defaultFrontColor)
	props.Set(keyBackColor, defaultBackColor)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()
	if _, err := props.Write(file, properties.UTF8); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	rawString := `# Inset of each bar inside its cell, in pixels (remove the leading # to uncomment)
#STORY_PADDING=2

# Start again from the first bar after the last one ends
#STORY_LOOP=true
`
	if _, err := file.WriteString(rawString); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
