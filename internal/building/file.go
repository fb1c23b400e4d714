package building

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML design. Fields the file omits keep their Default()
// values; unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening design file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	return DecodeYAML(f)
}

// DecodeYAML decodes a design from r over Default() and validates it.
func DecodeYAML(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDesign, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return normalise(cfg), nil
}
