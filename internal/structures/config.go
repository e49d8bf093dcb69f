package structures

import "time"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Path        string        `yaml:"path" validate:"required|unixPath"`
	BusyTimeout time.Duration `yaml:"busyTimeout"`
}

type BackupConfig struct {
	Enabled        bool          `yaml:"enabled"`
	FilePath       string        `yaml:"filePath" validate:"unixPath"`
	Interval       time.Duration `yaml:"interval"`
	RestoreOnEmpty bool          `yaml:"restoreOnEmpty"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LocationConfig describes the fixed position reported when location capture
// is requested. Disabled means every capture resolves to no location.
type LocationConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Lat       float64       `yaml:"lat"`
	Lon       float64       `yaml:"lon"`
	AccuracyM float64       `yaml:"accuracyM"`
	Timeout   time.Duration `yaml:"timeout"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Timezone  string         `yaml:"timezone"`
	WebServer Server         `yaml:"webServer"`
	Storage   StorageConfig  `yaml:"storage"`
	Backup    BackupConfig   `yaml:"backup"`
	Logger    LoggerConfig   `yaml:"logger"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
	Location  LocationConfig `yaml:"location"`
}

// TimeLocation resolves Timezone, falling back to the host zone.
func (c *Config) TimeLocation() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
