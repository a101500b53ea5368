// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ik5/lc3bridge/codec"
	"github.com/ik5/lc3bridge/codec/lc3"
)

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over Default and validates the result.
// Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns every problem found in cfg, joined.
func Validate(cfg *Config) error {
	var errs []error

	if _, err := cfg.Level(); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: trace, debug, info, warn, error", cfg.LogLevel))
	}

	c := cfg.Codec
	if c.FrameDurationUs != lc3.Duration7500us && c.FrameDurationUs != lc3.Duration10000us {
		errs = append(errs, fmt.Errorf("codec.frame_duration_us %d is invalid; valid values: %d, %d",
			c.FrameDurationUs, lc3.Duration7500us, lc3.Duration10000us))
	} else if lc3.FrameSamples(c.FrameDurationUs, c.SampleRateHz) <= 0 {
		errs = append(errs, fmt.Errorf("codec.sample_rate_hz %d is not an LC3 rate", c.SampleRateHz))
	}
	if c.EncodedFrameBytes < codec.MinEncodedFrameBytes || c.EncodedFrameBytes > codec.MaxEncodedFrameBytes {
		errs = append(errs, fmt.Errorf("codec.encoded_frame_bytes %d is out of range [%d, %d]",
			c.EncodedFrameBytes, codec.MinEncodedFrameBytes, codec.MaxEncodedFrameBytes))
	}

	if cfg.Transcode.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("transcode.buffer_size %d must be positive", cfg.Transcode.BufferSize))
	}

	return errors.Join(errs...)
}
