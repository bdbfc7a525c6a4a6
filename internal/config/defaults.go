package config

const (
	defaultCaptureRoot = "."
	defaultOutputDir   = "."
	defaultLogDir      = "~/.local/share/timelapse/logs"
	defaultDirPrefix   = "capture-"
	defaultFrameGlob   = "*.jpg"
	defaultBinary      = "ffmpeg"
	defaultFFprobe     = "ffprobe"
	defaultFrameRate   = 30
	defaultFontPath    = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	defaultPreset      = "veryslow"
	defaultVideoExt    = ".mp4"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// KnownPresets is the ffmpeg speed/quality ladder, slowest last. Preset values
// are passed through to the encoder unvalidated; this list only feeds help
// text and the sample configuration.
var KnownPresets = []string{"ultrafast", "superfast", "veryfast", "faster", "fast", "medium", "slow", "slower", "veryslow"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CaptureRoot: defaultCaptureRoot,
			OutputDir:   defaultOutputDir,
			LogDir:      defaultLogDir,
		},
		Capture: Capture{
			DirPrefix: defaultDirPrefix,
			FrameGlob: defaultFrameGlob,
		},
		Encoder: Encoder{
			Binary:        defaultBinary,
			FFprobeBinary: defaultFFprobe,
			FrameRate:     defaultFrameRate,
			FontPath:      defaultFontPath,
			Preset:        defaultPreset,
			VideoExt:      defaultVideoExt,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
