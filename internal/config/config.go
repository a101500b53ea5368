// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML settings of the lc3conv command.
package config

import (
	"github.com/sirupsen/logrus"

	"github.com/ik5/lc3bridge/codec/lc3"
)

// Config is the root of the YAML file.
type Config struct {
	// LogLevel is a logrus level name: trace, debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Codec     CodecConfig     `yaml:"codec"`
	Denoise   DenoiseConfig   `yaml:"denoise"`
	Transcode TranscodeConfig `yaml:"transcode"`
}

// CodecConfig is the LC3 frame geometry.
type CodecConfig struct {
	FrameDurationUs   int `yaml:"frame_duration_us"`
	SampleRateHz      int `yaml:"sample_rate_hz"`
	EncodedFrameBytes int `yaml:"encoded_frame_bytes"`
}

type DenoiseConfig struct {
	Enabled bool `yaml:"enabled"`
}

type TranscodeConfig struct {
	// BufferSize is the read size, in samples, used when draining sources.
	BufferSize int `yaml:"buffer_size"`
}

// Default mirrors the fixed geometry of the flat Decode and Encode calls.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Codec: CodecConfig{
			FrameDurationUs:   lc3.Duration10000us,
			SampleRateHz:      16000,
			EncodedFrameBytes: 20,
		},
		Transcode: TranscodeConfig{BufferSize: 4096},
	}
}

// Level parses LogLevel, falling back to info when it is empty.
func (c *Config) Level() (logrus.Level, error) {
	if c.LogLevel == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(c.LogLevel)
}
