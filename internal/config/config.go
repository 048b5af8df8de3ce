// Package config handles exporter configuration loading and management.
package config

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds settings shared by the collision and scene exports.
type ExportConfig struct {
	Scale               float32 `yaml:"scale"`                // Uniform scale applied to collision vertices
	CollisionCollection string  `yaml:"collision_collection"` // Host collection holding collision meshes
	OutputDir           string  `yaml:"output_dir"`           // Start directory for the save dialog
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Overrides holds values supplied on the command line. Zero values leave
// the loaded configuration untouched.
type Overrides struct {
	Debug      bool
	Scale      float32
	Collection string
	LogFile    string
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Scale:               1,
			CollisionCollection: "collision",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Apply applies command-line overrides to the config.
func (o Overrides) Apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.Scale != 0 {
		cfg.Export.Scale = o.Scale
	}
	if o.Collection != "" {
		cfg.Export.CollisionCollection = o.Collection
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
}
