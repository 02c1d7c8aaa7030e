// Package config loads application settings from a YAML config file and
// environment variables. Core pipeline packages never read configuration
// themselves; they consume plain scalars from the Settings struct.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds all configuration for the spellcaster system.
type Settings struct {
	Camera struct {
		ID          int     // camera device index
		Width       int     // capture width in pixels
		Height      int     // capture height in pixels
		FPS         int     // capture frame rate
		IRThreshold int     // brightness cutoff for IR detection (0-255)
		MinBlobArea float64 // minimum contour area for the wand tip
		MaxBlobArea float64 // maximum contour area for the wand tip
	}

	Gesture struct {
		ResamplePoints int     // fixed point count N for normalized paths
		TimeoutFrames  int     // detection-free frames that end a gesture
		MinPoints      int     // minimum points for a valid gesture
		MinConfidence  float64 // confidence gate for accepting a spell
		ModelPath      string  // path to the persisted classifier model
	}

	Database struct {
		Path string // path to the sqlite database
	}

	Server struct {
		Enabled bool
		Addr    string // listen address, e.g. ":8080"
	}

	Hooks struct {
		Enabled bool
		Dir     string // directory of per-spell hook executables
		Timeout int    // hook execution timeout in milliseconds
	}

	Tray struct {
		Enabled bool
	}
}

func setDefaults() {
	viper.SetDefault("camera.id", 0)
	viper.SetDefault("camera.width", 640)
	viper.SetDefault("camera.height", 480)
	viper.SetDefault("camera.fps", 30)
	viper.SetDefault("camera.irthreshold", 200)
	viper.SetDefault("camera.minblobarea", 50)
	viper.SetDefault("camera.maxblobarea", 5000)

	viper.SetDefault("gesture.resamplepoints", 32)
	viper.SetDefault("gesture.timeoutframes", 15)
	viper.SetDefault("gesture.minpoints", 15)
	viper.SetDefault("gesture.minconfidence", 0.7)
	viper.SetDefault("gesture.modelpath", defaultDataPath("spell_classifier.json"))

	viper.SetDefault("database.path", defaultDataPath("spellcaster.db"))

	viper.SetDefault("server.enabled", true)
	viper.SetDefault("server.addr", ":8080")

	viper.SetDefault("hooks.enabled", false)
	viper.SetDefault("hooks.dir", defaultDataPath("hooks"))
	viper.SetDefault("hooks.timeout", 5000)

	viper.SetDefault("tray.enabled", false)
}

// Load reads configuration from the given file path, or from the default
// search paths when path is empty. A missing config file is not an error;
// defaults and environment overrides still apply.
func Load(path string) (*Settings, error) {
	setDefaults()

	viper.SetEnvPrefix("spellcaster")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".spellcaster"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var settings Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks value ranges that would otherwise fail deep inside the
// pipeline.
func (s *Settings) Validate() error {
	if s.Camera.IRThreshold < 0 || s.Camera.IRThreshold > 255 {
		return fmt.Errorf("camera.irthreshold must be 0-255, got %d", s.Camera.IRThreshold)
	}
	if s.Gesture.MinConfidence < 0 || s.Gesture.MinConfidence > 1 {
		return fmt.Errorf("gesture.minconfidence must be 0-1, got %g", s.Gesture.MinConfidence)
	}
	if s.Camera.MinBlobArea >= s.Camera.MaxBlobArea {
		return fmt.Errorf("camera.minblobarea must be less than camera.maxblobarea")
	}
	if s.Gesture.ResamplePoints < 3 {
		return fmt.Errorf("gesture.resamplepoints must be at least 3, got %d", s.Gesture.ResamplePoints)
	}
	return nil
}

// defaultDataPath returns a path under ~/.spellcaster, falling back to the
// working directory when the home directory is unavailable.
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".spellcaster", name)
}
