package panorama

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// Defaults used by DefaultOptions and for zero-valued Options fields.
const (
	DefaultInitialSpeed = 10.0
	DefaultKeySpeed     = 5.0
	DefaultDamping      = 1.05
	maxAutoSlices       = 600
)

// SliceCount is a number of projection slices. The zero value, AutoSlices,
// picks min(600, viewport width) at construction time.
type SliceCount int

// AutoSlices selects the slice count from the viewport width.
const AutoSlices SliceCount = 0

// String returns "auto" for AutoSlices and the decimal count otherwise.
func (c SliceCount) String() string {
	if c == AutoSlices {
		return "auto"
	}
	return strconv.Itoa(int(c))
}

// resolve returns the concrete slice count for a viewport width.
func (c SliceCount) resolve(viewportWidth int) int {
	if c == AutoSlices {
		return max(1, min(maxAutoSlices, viewportWidth))
	}
	return int(c)
}

// Options configures a Panorama. Start from DefaultOptions; zero values of
// FieldOfView, KeySpeed, Damping, Loader and LogOutput fall back to their
// defaults.
type Options struct {
	// Surface is the drawable target. Required.
	Surface Surface `yaml:"-"`
	// Source locates the panorama image for Load: a file path or an
	// http(s) URL.
	Source string `yaml:"source"`

	// InitialSpeed is the velocity before any user interaction, in pixels per
	// tick. It is not damped until the user moves the view once.
	InitialSpeed float64 `yaml:"initial_speed"`
	// NumSlices is the number of slices; AutoSlices for min(600, width).
	NumSlices SliceCount `yaml:"num_slices"`
	// SilentDegradeQualityIfNeeded quarters NumSlices once after sustained
	// low frame rate.
	SilentDegradeQualityIfNeeded bool `yaml:"silent_degrade_quality_if_needed"`

	FieldOfView float64 `yaml:"field_of_view"`
	// KeySpeed is the velocity applied by an arrow key.
	KeySpeed float64 `yaml:"key_speed"`
	// Damping divides the velocity every tick once the user has moved.
	Damping float64 `yaml:"damping"`

	// Input, when set, is attached to the controller at construction and
	// detached on Close.
	Input PointerSource `yaml:"-"`
	// Scheduler drives render and quality ticks. When nil, the Panorama
	// owns a private one; see Panorama.Scheduler.
	Scheduler *Scheduler `yaml:"-"`
	// Loader fetches and decodes Source. Defaults to FileLoader.
	Loader Loader `yaml:"-"`

	// Debug logs per-frame timing to LogOutput.
	Debug     bool      `yaml:"debug"`
	LogOutput io.Writer `yaml:"-"`
}

// DefaultOptions returns the documented defaults with no surface or source.
func DefaultOptions() Options {
	return Options{
		InitialSpeed:                 DefaultInitialSpeed,
		NumSlices:                    AutoSlices,
		SilentDegradeQualityIfNeeded: true,
		FieldOfView:                  DefaultFieldOfView,
		KeySpeed:                     DefaultKeySpeed,
		Damping:                      DefaultDamping,
	}
}

// withDefaults fills zero-valued fields that have no meaningful zero.
func (o Options) withDefaults() Options {
	if o.FieldOfView == 0 {
		o.FieldOfView = DefaultFieldOfView
	}
	if o.KeySpeed == 0 {
		o.KeySpeed = DefaultKeySpeed
	}
	if o.Damping == 0 {
		o.Damping = DefaultDamping
	}
	if o.Loader == nil {
		o.Loader = FileLoader{}
	}
	if o.LogOutput == nil {
		o.LogOutput = os.Stderr
	}
	return o
}

// validate checks the options that do not depend on the surface or image.
func (o Options) validate() error {
	if o.NumSlices < 0 {
		return fmt.Errorf("%w: num slices %d, want >= 1 or auto", ErrDegenerateConfig, o.NumSlices)
	}
	if !(o.FieldOfView > 0 && o.FieldOfView < 180) {
		return fmt.Errorf("%w: field of view %g, want in (0, 180)", ErrDegenerateConfig, o.FieldOfView)
	}
	if o.Damping < 1 {
		return fmt.Errorf("%w: damping %g, want >= 1", ErrDegenerateConfig, o.Damping)
	}
	return nil
}
