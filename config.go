package panorama

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts an integer >= 1 or the string "auto".
func (c *SliceCount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("num_slices: expected scalar at line %d", value.Line)
	}
	if strings.EqualFold(strings.TrimSpace(value.Value), "auto") {
		*c = AutoSlices
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value.Value))
	if err != nil {
		return fmt.Errorf("num_slices: %q is neither an integer nor \"auto\"", value.Value)
	}
	if n < 1 {
		return fmt.Errorf("%w: num_slices %d, want >= 1 or auto", ErrDegenerateConfig, n)
	}
	*c = SliceCount(n)
	return nil
}

// MarshalYAML writes AutoSlices as "auto".
func (c SliceCount) MarshalYAML() (any, error) {
	if c == AutoSlices {
		return "auto", nil
	}
	return int(c), nil
}

// LoadOptions reads Options from a YAML file. Keys absent from the file keep
// the values of DefaultOptions.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read config file: %w", err)
	}
	return ParseOptions(data)
}

// ParseOptions decodes YAML options on top of DefaultOptions and validates
// the result.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if err := opts.withDefaults().validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
