package encoding

import (
	"fmt"

	"log/slog"

	"hevcpress/internal/config"
	"hevcpress/internal/logging"
)

// QualityMode names the quality control an encoder profile uses. CRF and CQ
// values live on different numeric scales and are not comparable.
type QualityMode string

const (
	QualityCRF QualityMode = "crf"
	QualityCQP QualityMode = "cqp"
)

// Profile is the immutable encoder parameter set for a run. Exactly one
// profile is active per batch; it is selected once and passed by value.
type Profile struct {
	VideoCodec   string
	QualityMode  QualityMode
	QualityValue int
	Preset       string
	ExtraArgs    []string
	Tag          string
}

// qualityFlag returns the ffmpeg flag carrying the quality value.
func (p Profile) qualityFlag() string {
	if p.QualityMode == QualityCQP {
		return "-cq"
	}
	return "-crf"
}

// SelectProfile maps the hardware-acceleration flag to a concrete profile.
// Pure aside from one informational log line.
func SelectProfile(enc config.Encoding, useHardware bool, logger *slog.Logger) Profile {
	if logger == nil {
		logger = logging.NewNop()
	}
	if useHardware {
		profile := Profile{
			VideoCodec:   "hevc_nvenc",
			QualityMode:  QualityCQP,
			QualityValue: enc.CQ,
			Preset:       enc.NVENCPreset,
			// VBR rate control with no bitrate ceiling and the full
			// quantizer range, so CQ alone steers quality.
			ExtraArgs: []string{"-rc", "vbr", "-b:v", "0k", "-qmin", "0", "-qmax", "51"},
			Tag:       fmt.Sprintf("NVENC_CQP%d", enc.CQ),
		}
		logger.Info("hardware encoding profile selected",
			logging.String(logging.FieldProfile, profile.Tag),
			logging.String("codec", profile.VideoCodec),
			logging.Int("cq", profile.QualityValue),
		)
		return profile
	}
	profile := Profile{
		VideoCodec:   "libx265",
		QualityMode:  QualityCRF,
		QualityValue: enc.CRF,
		Preset:       enc.Preset,
		Tag:          fmt.Sprintf("CRF%d", enc.CRF),
	}
	logger.Info("software encoding profile selected",
		logging.String(logging.FieldProfile, profile.Tag),
		logging.String("codec", profile.VideoCodec),
		logging.Int("crf", profile.QualityValue),
	)
	return profile
}
