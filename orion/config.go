package orion

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/oliverbestmann/lme/glimpse"
	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v3"
)

//go:generate go tool stringer -type=WindowMode -linecomment

type WindowMode uint8

const (
	Windowed   WindowMode = iota // windowed
	Fullscreen                   // fullscreen
	Borderless                   // borderless
)

// ParseWindowMode parses the name of a mode as returned by WindowMode.String
func ParseWindowMode(name string) (WindowMode, error) {
	for _, mode := range []WindowMode{Windowed, Fullscreen, Borderless} {
		if strings.EqualFold(name, mode.String()) {
			return mode, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfiguration, name)
}

func (m WindowMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *WindowMode) UnmarshalText(text []byte) error {
	mode, err := ParseWindowMode(string(text))
	if err != nil {
		return err
	}

	*m = mode
	return nil
}

func (m *WindowMode) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}

	if err := m.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}

	return nil
}

func (m WindowMode) surfaceMode() glimpse.Mode {
	switch m {
	case Fullscreen:
		return glimpse.ModeFullscreen
	case Borderless:
		return glimpse.ModeBorderless
	default:
		return glimpse.ModeWindowed
	}
}

type WindowConfig struct {
	Title  string     `yaml:"title"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Mode   WindowMode `yaml:"mode"`

	// OnResize is called during Pump after the size of the window changed.
	// Returning false is logged, the window stays open.
	OnResize func(w *Window, width, height int) bool `yaml:"-"`
}

// MaxWindowSize is the largest width or height of a window. X11 transfers
// sizes as 16 bit values.
const MaxWindowSize = math.MaxUint16

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title:  "Orion",
		Width:  1000,
		Height: 600,
		Mode:   Windowed,
	}
}

// Validate checks that the configuration can be used to create a window.
// The returned error wraps ErrInvalidConfiguration.
func (c WindowConfig) Validate() error {
	if err := requireInRange("mode", c.Mode, Windowed, Borderless); err != nil {
		return err
	}

	if c.Mode == Fullscreen {
		// size is chosen by the display
		return nil
	}

	return errors.Join(
		requireInRange("width", c.Width, 1, MaxWindowSize),
		requireInRange("height", c.Height, 1, MaxWindowSize),
	)
}

func (c WindowConfig) surfaceConfig() glimpse.SurfaceConfig {
	return glimpse.SurfaceConfig{
		Title:  c.Title,
		Width:  c.Width,
		Height: c.Height,
		Mode:   c.Mode.surfaceMode(),
	}
}

func requireInRange[T constraints.Integer](name string, value, lowest, highest T) error {
	if value < lowest || value > highest {
		return fmt.Errorf("%w: %s must be between %v and %v, got %v",
			ErrInvalidConfiguration, name, lowest, highest, value)
	}

	return nil
}

// LoadWindowConfig reads a yaml file. Fields missing in the file keep
// the values of DefaultWindowConfig.
func LoadWindowConfig(path string) (WindowConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WindowConfig{}, fmt.Errorf("read window config: %w", err)
	}

	conf, err := ParseWindowConfig(data)
	if err != nil {
		return WindowConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return conf, nil
}

func ParseWindowConfig(data []byte) (WindowConfig, error) {
	conf := DefaultWindowConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&conf)
	switch {
	case errors.Is(err, io.EOF):
		// empty document
		return conf, nil

	case err != nil:
		return WindowConfig{}, err
	}

	if err := conf.Validate(); err != nil {
		return WindowConfig{}, err
	}

	return conf, nil
}
