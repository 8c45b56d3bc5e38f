// config.go: defines the settings structure and config file loading for fishfinder-go
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// LogConfig defines the configuration for a log file
type LogConfig struct {
	Enabled bool   // true to enable this log
	Path    string // path to log file
}

// ModelSettings contains the TFLite classifier configuration
type ModelSettings struct {
	Path       string // path to the trained .tflite model file
	Threads    int    // number of CPU threads for the interpreter, 0 to use all
	UseXNNPACK bool   // true to enable the XNNPACK delegate
}

// QueueSettings contains the message queue (RabbitMQ) configuration
type QueueSettings struct {
	URL        string // AMQP broker URL
	Exchange   string // exchange the upload events are published to
	Queue      string // durable queue name for this worker
	RoutingKey string // routing key binding the queue to the exchange
}

// StorageSettings contains the object store and scratch space configuration
type StorageSettings struct {
	Provider   string // object store provider: "http" or "local"
	Endpoint   string // base URL for the http provider, e.g. https://storage.example.com
	Root       string // root directory for the local provider
	ScratchDir string // scratch directory for downloaded images, empty for os.TempDir
}

// SQLiteSettings contains the SQLite database configuration
type SQLiteSettings struct {
	Enabled bool   // true to enable the SQLite result store
	Path    string // path to the database file
}

// MySQLSettings contains the MySQL database configuration
type MySQLSettings struct {
	Enabled  bool   // true to enable the MySQL result store
	Username string // MySQL username
	Password string // MySQL password
	Database string // MySQL database name
	Host     string // MySQL host
	Port     string // MySQL port
}

// OutputSettings contains the result store configuration
type OutputSettings struct {
	SQLite SQLiteSettings
	MySQL  MySQLSettings
}

// NotifySettings contains the notification channel configuration
type NotifySettings struct {
	Enabled bool     // true to publish a notification per processed image
	URLs    []string // shoutrrr service URLs
}

// TelemetrySettings contains the prometheus endpoint configuration
type TelemetrySettings struct {
	Enabled bool   // true to expose prometheus metrics
	Listen  string // listen address, e.g. "0.0.0.0:8090"
}

// MainSettings contains general application settings
type MainSettings struct {
	Name string    // name of this node, used in log and notification output
	Log  LogConfig // main log configuration
}

// Settings is the top level configuration structure
type Settings struct {
	Debug bool // true to enable debug level logging

	Main      MainSettings
	Model     ModelSettings
	Queue     QueueSettings
	Storage   StorageSettings
	Output    OutputSettings
	Notify    NotifySettings
	Telemetry TelemetrySettings
}

// settingsInstance is the current settings instance
var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	// Initialize viper and read config
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	// Unmarshal the config into settings
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	// Validate settings
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// Setting returns the current settings instance, loading it if needed.
func Setting() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, continue on defaults and flags
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the list of directories searched for config.yaml,
// current working directory first, then the user config directory.
func GetDefaultConfigPaths() ([]string, error) {
	paths := []string{"."}

	configDir, err := os.UserConfigDir()
	if err == nil {
		paths = append(paths, filepath.Join(configDir, "fishfinder-go"))
	}

	return paths, nil
}

// ScratchDir returns the configured scratch directory, falling back to the
// operating system temp directory.
func (s *Settings) ScratchDir() string {
	if s.Storage.ScratchDir != "" {
		return s.Storage.ScratchDir
	}
	return os.TempDir()
}
