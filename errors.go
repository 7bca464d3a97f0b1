package panorama

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig reports a missing or unusable surface or source. Construction
	// fails before any input handler is attached.
	ErrConfig = errors.New("panorama: invalid config")

	// ErrDegenerateConfig reports a slice count, field of view or image size
	// for which the projection kernel is undefined.
	ErrDegenerateConfig = errors.New("panorama: degenerate projection config")

	// ErrImageLoad matches any *ImageLoadError via errors.Is.
	ErrImageLoad = errors.New("panorama: image load failed")

	// ErrImageAlreadySet is returned when SetImage is called twice. The
	// source image is immutable for the lifetime of an instance.
	ErrImageAlreadySet = errors.New("panorama: image already set")

	// ErrClosed is returned by operations on a closed Panorama.
	ErrClosed = errors.New("panorama: closed")
)

// ImageLoadError describes a source image that could not be fetched or
// decoded. No render loop is started when it is returned.
type ImageLoadError struct {
	Source string
	Err    error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("panorama: image %q is not loaded: %v", e.Source, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrImageLoad.
func (e *ImageLoadError) Is(target error) bool { return target == ErrImageLoad }
