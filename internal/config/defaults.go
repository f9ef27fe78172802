package config

const (
	defaultLogDir          = "~/.local/share/hevcpress/logs"
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
	defaultCRF             = 20
	defaultPreset          = "medium"
	defaultCQ              = 23
	defaultNVENCPreset     = "medium"
	defaultAudioCodec      = "aac"
	defaultAudioBitrate    = "192k"
	defaultOutputExtension = ".mp4"
	defaultWorkers         = 1
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

func defaultInputExtensions() []string {
	return []string{".mov", ".mp4", ".avi", ".mkv"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Encoding: Encoding{
			FFmpegBinary:    defaultFFmpegBinary,
			FFprobeBinary:   defaultFFprobeBinary,
			CRF:             defaultCRF,
			Preset:          defaultPreset,
			CQ:              defaultCQ,
			NVENCPreset:     defaultNVENCPreset,
			AudioCodec:      defaultAudioCodec,
			AudioBitrate:    defaultAudioBitrate,
			InputExtensions: defaultInputExtensions(),
			OutputExtension: defaultOutputExtension,
			Workers:         defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
