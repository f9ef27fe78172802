package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEncoding() error {
	enc := c.Encoding
	if strings.TrimSpace(enc.FFmpegBinary) == "" {
		return errors.New("encoding.ffmpeg_binary must be set")
	}
	if strings.TrimSpace(enc.FFprobeBinary) == "" {
		return errors.New("encoding.ffprobe_binary must be set")
	}
	if enc.CRF < 0 || enc.CRF > 51 {
		return fmt.Errorf("encoding.crf must be between 0 and 51, got %d", enc.CRF)
	}
	if enc.CQ < 0 || enc.CQ > 51 {
		return fmt.Errorf("encoding.cq must be between 0 and 51, got %d", enc.CQ)
	}
	if strings.TrimSpace(enc.Preset) == "" {
		return errors.New("encoding.preset must be set")
	}
	if strings.TrimSpace(enc.NVENCPreset) == "" {
		return errors.New("encoding.nvenc_preset must be set")
	}
	if strings.TrimSpace(enc.AudioCodec) == "" {
		return errors.New("encoding.audio_codec must be set")
	}
	if strings.TrimSpace(enc.AudioBitrate) == "" {
		return errors.New("encoding.audio_bitrate must be set")
	}
	if len(enc.InputExtensions) == 0 {
		return errors.New("encoding.input_extensions must not be empty")
	}
	if strings.TrimSpace(enc.OutputExtension) == "" {
		return errors.New("encoding.output_extension must be set")
	}
	if enc.Workers < 1 {
		return fmt.Errorf("encoding.workers must be at least 1, got %d", enc.Workers)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
