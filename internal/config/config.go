package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEnergyFile       = "energy_train.out"
	DefaultForceFile        = "force_train.out"
	DefaultStressFile       = "stress_train.out"
	DefaultOutput           = "prediction.png"
	DefaultOutlierThreshold = 1e6
	DefaultPadding          = 0.08
	DefaultWidth            = 12.0
	DefaultHeight           = 3.3
	DefaultDPI              = 300
	DefaultLabelFontSize    = 11.0
	DefaultLetterFontSize   = 13.0
	DefaultMarkerRadius     = 1.5
	DefaultLineWidth        = 2.0
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Preset           string  `yaml:"preset"`
	Inputs           Inputs  `yaml:"inputs"`
	Output           string  `yaml:"output"`
	OutlierThreshold float64 `yaml:"outlier_threshold"`
	Padding          float64 `yaml:"padding"`
	Figure           Figure  `yaml:"figure"`
}

type Inputs struct {
	Energy string `yaml:"energy"`
	Force  string `yaml:"force"`
	Stress string `yaml:"stress"`
}

// Figure sizes are in inches, font sizes and widths in points.
type Figure struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	DPI            int     `yaml:"dpi"`
	LabelFontSize  float64 `yaml:"label_font_size"`
	LetterFontSize float64 `yaml:"letter_font_size"`
	MarkerRadius   float64 `yaml:"marker_radius"`
	LineWidth      float64 `yaml:"line_width"`
	Margins        Margins `yaml:"margins"`
	WSpace         float64 `yaml:"wspace"`
}

// Margins are figure fractions, measured the same way as a subplots_adjust
// call: Top and Right are positions, not widths.
type Margins struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset: "train",
		Inputs: Inputs{
			Energy: DefaultEnergyFile,
			Force:  DefaultForceFile,
			Stress: DefaultStressFile,
		},
		Output:           DefaultOutput,
		OutlierThreshold: DefaultOutlierThreshold,
		Padding:          DefaultPadding,
		Figure:           DefaultFigure(),
	}
}

func DefaultFigure() Figure {
	return Figure{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		DPI:            DefaultDPI,
		LabelFontSize:  DefaultLabelFontSize,
		LetterFontSize: DefaultLetterFontSize,
		MarkerRadius:   DefaultMarkerRadius,
		LineWidth:      DefaultLineWidth,
		Margins: Margins{
			Top:    0.968,
			Bottom: 0.16,
			Left:   0.086,
			Right:  0.983,
		},
		WSpace: 0.25,
	}
}

// Overlay applies the keys present in the YAML file at path onto cfg.
func Overlay(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Inputs.Energy == "" || c.Inputs.Force == "" || c.Inputs.Stress == "":
		return fmt.Errorf("%w: input file names must not be empty", ErrInvalid)
	case c.Output == "":
		return fmt.Errorf("%w: output path must not be empty", ErrInvalid)
	case !(c.OutlierThreshold > 0):
		return fmt.Errorf("%w: outlier_threshold must be positive, got %g", ErrInvalid, c.OutlierThreshold)
	case !(c.Padding >= 0):
		return fmt.Errorf("%w: padding must not be negative, got %g", ErrInvalid, c.Padding)
	}
	return c.Figure.Validate()
}

func (f Figure) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: figure size must be positive, got %gx%g", ErrInvalid, f.Width, f.Height)
	}
	if f.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be positive, got %d", ErrInvalid, f.DPI)
	}
	m := f.Margins
	if m.Left < 0 || m.Right > 1 || m.Left >= m.Right || m.Bottom < 0 || m.Top > 1 || m.Bottom >= m.Top {
		return fmt.Errorf("%w: margins must satisfy 0 <= left < right <= 1 and 0 <= bottom < top <= 1", ErrInvalid)
	}
	return nil
}
