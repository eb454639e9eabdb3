package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configExtensions = []string{"yml", "yaml", "json", "toml"}

// userConfigDir is replaced in tests
var userConfigDir = os.UserConfigDir

// flagKeys maps command flags to configuration keys
var flagKeys = map[string]string{
	"verbose":    "verbose",
	"no-history": "no_history",
	"jobs":       "jobs",
	"save-temps": "save_temps",
}

// Loader handles configuration loading from various sources
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForDriver loads configuration for a driver run rooted at workingDir.
// An explicit config file replaces the local config search.
func (l *Loader) LoadForDriver(cmd *cobra.Command, workingDir, explicit string) (*Config, error) {
	l.setupViperDefaults()
	l.loadGlobalConfig()

	if explicit != "" {
		if err := l.loadExplicitConfig(explicit); err != nil {
			return nil, err
		}
	} else {
		l.loadLocalConfig(workingDir)
	}

	l.bindCommandFlags(cmd)

	return Load()
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("toolchain_dir", "")
	viper.SetDefault("frontend_path", "")
	viper.SetDefault("ld_path", "")
	viper.SetDefault("clang_path", "")
	viper.SetDefault("ar_path", "")
	viper.SetDefault("libtool_path", "")
	viper.SetDefault("autolink_extract_path", "")
	viper.SetDefault("dsymutil_path", "")
	viper.SetDefault("temp_dir", "")
	viper.SetDefault("history_dir", "")
	viper.SetDefault("jobs", DefaultJobs)
	viper.SetDefault("save_temps", DefaultSaveTemps)
	viper.SetDefault("no_history", DefaultNoHistory)
	viper.SetDefault("verbose", DefaultVerbose)
}

// loadGlobalConfig loads global configuration from the user config directory
func (l *Loader) loadGlobalConfig() {
	base, err := userConfigDir()
	if err != nil || base == "" {
		return
	}

	globalDir := filepath.Join(base, "swiftdriver")

	for _, ext := range configExtensions {
		globalPath := filepath.Join(globalDir, "config."+ext)

		if _, err := os.Stat(globalPath); err == nil {
			viper.SetConfigFile(globalPath)

			if err := viper.MergeInConfig(); err == nil {
				break
			}
		}
	}
}

// loadLocalConfig merges the nearest .swiftdriver.* file over the global one
func (l *Loader) loadLocalConfig(workingDir string) {
	dir, err := filepath.Abs(workingDir)
	if err != nil {
		return // silently ignore, the driver reports a bad working directory
	}

	localPath := FindLocalConfig(dir)
	if localPath != "" {
		viper.SetConfigFile(localPath)
		_ = viper.MergeInConfig()
	}
}

func (l *Loader) loadExplicitConfig(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	viper.SetConfigFile(path)
	if err := viper.MergeInConfig(); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
}
