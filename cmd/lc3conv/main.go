// SPDX-License-Identifier: EPL-2.0

// Command lc3conv converts audio files to raw LC3 and back.
//
//	lc3conv [-config file] [-log-level lvl] [-denoise] encode <in.{wav,mp3,ogg,aiff}> <out.lc3>
//	lc3conv [-config file] [-log-level lvl] [-rate hz] decode <in.lc3> <out.wav>
//
// A raw LC3 file is a plain concatenation of fixed-size frames.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ik5/lc3bridge"
	"github.com/ik5/lc3bridge/audio"
	"github.com/ik5/lc3bridge/codec"
	"github.com/ik5/lc3bridge/codec/lc3"
	"github.com/ik5/lc3bridge/denoise"
	"github.com/ik5/lc3bridge/formats/aiff"
	"github.com/ik5/lc3bridge/formats/mp3"
	"github.com/ik5/lc3bridge/formats/vorbis"
	"github.com/ik5/lc3bridge/formats/wav"
	"github.com/ik5/lc3bridge/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr, lc3.New()))
}

func run(args []string, stderr io.Writer, backend codec.Backend) int {
	fs := flag.NewFlagSet("lc3conv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML configuration file")
	logLevel := fs.String("log-level", "", "override log_level from the configuration")
	withDenoise := fs.Bool("denoise", false, "denoise before encoding (overrides denoise.enabled)")
	outRate := fs.Int("rate", 0, "sample rate of the decoded WAV; 0 keeps the codec rate")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(stderr, "lc3conv: %v\n", err)
			return 1
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *withDenoise {
		cfg.Denoise.Enabled = true
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "lc3conv: %v\n", err)
		return 1
	}

	lvl, _ := cfg.Level()
	logrus.SetLevel(lvl)
	logrus.SetOutput(stderr)

	if fs.NArg() != 3 {
		fmt.Fprintln(stderr, "usage: lc3conv [flags] encode <in.{wav,mp3,ogg,aiff}> <out.lc3>")
		fmt.Fprintln(stderr, "       lc3conv [flags] decode <in.lc3> <out.wav>")
		return 2
	}
	cmd, in, out := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	conv, err := lc3bridge.NewConverter(
		lc3bridge.WithBackend(backend),
		lc3bridge.WithFrameDuration(cfg.Codec.FrameDurationUs),
		lc3bridge.WithSampleRate(cfg.Codec.SampleRateHz),
		lc3bridge.WithEncodedFrameSize(cfg.Codec.EncodedFrameBytes),
	)
	if err != nil {
		fmt.Fprintf(stderr, "lc3conv: %v\n", err)
		return 1
	}
	defer conv.Close()

	switch cmd {
	case "encode":
		err = encodeFile(conv, cfg, in, out)
	case "decode":
		err = decodeFile(conv, in, out, *outRate)
	default:
		fmt.Fprintf(stderr, "lc3conv: unknown command %q\n", cmd)
		return 2
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "main.run",
			"command":  cmd,
			"input":    in,
			"error":    err.Error(),
		}).Error("Conversion failed")
		return 1
	}
	return 0
}

func decoders() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

func encodeFile(conv *lc3bridge.Converter, cfg *config.Config, in, out string) error {
	dec, err := decoders().ForPath(in)
	if err != nil {
		return err
	}

	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", in, err)
	}

	opts := []lc3bridge.TranscodeOption{lc3bridge.WithBufferSize(cfg.Transcode.BufferSize)}
	if cfg.Denoise.Enabled {
		opts = append(opts, lc3bridge.WithDenoise(denoise.Default()))
	}

	data, err := lc3bridge.EncodeSource(conv, src, opts...)
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "main.encodeFile",
		"output":   out,
		"frames":   len(data) / conv.OutputFrameSize(),
	}).Info("Encoded")
	return nil
}

func decodeFile(conv *lc3bridge.Converter, in, out string, rate int) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	pcm, outRate, err := decodePCM(conv, data, rate)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := wav.WriteWAV16(f, outRate, pcm); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "main.decodeFile",
		"output":   out,
		"samples":  len(pcm),
		"rate":     outRate,
	}).Info("Decoded")
	return nil
}

// decodePCM decodes data and, when rate asks for it, resamples the result.
func decodePCM(conv *lc3bridge.Converter, data []byte, rate int) ([]int16, int, error) {
	codecRate := conv.Geometry().SampleRateHz
	if rate <= 0 || rate == codecRate {
		raw, err := conv.Decode(data)
		if err != nil {
			return nil, 0, err
		}
		pcm, err := audio.Int16s(raw)
		return pcm, codecRate, err
	}

	src, err := lc3bridge.DecodeToSource(conv, data)
	if err != nil {
		return nil, 0, err
	}
	res := audio.NewResampler(src, rate)
	defer res.Close()

	samples, err := audio.ReadAll(res, 0)
	if err != nil {
		return nil, 0, err
	}
	pcm := make([]int16, len(samples))
	for i, x := range samples {
		pcm[i] = audio.Float32ToInt16(x)
	}
	return pcm, rate, nil
}
