package config

const (
	defaultOutputDir         = "~/segue"
	defaultTempDir           = "~/.local/share/segue/tmp"
	defaultLogDir            = "~/.local/share/segue/logs"
	defaultQueueDB           = "~/.local/share/segue/queue.db"
	defaultFFmpegBinary      = "ffmpeg"
	defaultFFprobeBinary     = "ffprobe"
	defaultRenderFPS         = 30
	defaultRenderWidth       = 1280
	defaultRenderHeight      = 720
	defaultRenderTotalFrames = 30
	defaultRenderWorkers     = 4
	defaultQueuePollInterval = 5
	defaultHeartbeatInterval = 15
	defaultHeartbeatTimeout  = 120
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			TempDir:   defaultTempDir,
			LogDir:    defaultLogDir,
			QueueDB:   defaultQueueDB,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Render: Render{
			FPS:         defaultRenderFPS,
			Width:       defaultRenderWidth,
			Height:      defaultRenderHeight,
			TotalFrames: defaultRenderTotalFrames,
			Workers:     defaultRenderWorkers,
		},
		Workflow: Workflow{
			QueuePollInterval: defaultQueuePollInterval,
			HeartbeatInterval: defaultHeartbeatInterval,
			HeartbeatTimeout:  defaultHeartbeatTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
