package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagMaterials   = flag.Bool("materials", false, "Extract material factors")
	flagNoAnimation = flag.Bool("no-animation", false, "Skip animation resampling")
	flagMaxFrames   = flag.Int("max-frames", 0, "Maximum resampled frames per clip")
	flagLogFile     = flag.String("log-file", "", "Write logs to this file as well")
)

// ParseFlags parses the global command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after the global flags: the command and
// its own arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMaterials {
		cfg.Loader.Materials = true
	}
	if *flagNoAnimation {
		cfg.Loader.Animation = false
	}
	if *flagMaxFrames > 0 {
		cfg.Loader.MaxFrames = *flagMaxFrames
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
