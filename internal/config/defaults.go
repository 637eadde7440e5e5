package config

const (
	defaultDataDir         = "./data"
	defaultOutputFileName  = "file_list.json"
	defaultRowCountWorkers = 4
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultLogOutput       = "stderr"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Indexing: Indexing{
			RowCountWorkers: defaultRowCountWorkers,
		},
		Logging: Logging{
			Format:  defaultLogFormat,
			Level:   defaultLogLevel,
			Outputs: []string{defaultLogOutput},
		},
	}
}
