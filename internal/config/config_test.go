package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/swiftdriver/internal/job"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupViper  func()
		check       func(*testing.T, *Config)
		wantErr     bool
		errContains string
	}{
		{
			name: "load with all defaults",
			setupViper: func() {
				viper.Reset()
				NewLoader().setupViperDefaults()
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultJobs, cfg.Jobs)
				assert.False(t, cfg.SaveTemps)
				assert.False(t, cfg.NoHistory)
				assert.False(t, cfg.Verbose)
				assert.Empty(t, cfg.ToolchainDir)
				assert.True(t, filepath.IsAbs(cfg.TempDir))
			},
		},
		{
			name: "load with custom values",
			setupViper: func() {
				viper.Reset()
				viper.Set("toolchain_dir", "toolchain")
				viper.Set("ld_path", "/usr/bin/ld64")
				viper.Set("clang_path", "clang-17")
				viper.Set("history_dir", "history")
				viper.Set("jobs", 3)
				viper.Set("save_temps", true)
				viper.Set("no_history", true)
				viper.Set("verbose", true)
			},
			check: func(t *testing.T, cfg *Config) {
				toolchain, _ := filepath.Abs("toolchain")
				history, _ := filepath.Abs("history")
				ld, _ := filepath.Abs("/usr/bin/ld64")

				assert.Equal(t, toolchain, cfg.ToolchainDir)
				assert.Equal(t, history, cfg.HistoryDir)
				assert.Equal(t, ld, cfg.LDPath)
				assert.Equal(t, "clang-17", cfg.ClangPath)
				assert.Equal(t, 3, cfg.Jobs)
				assert.True(t, cfg.SaveTemps)
				assert.True(t, cfg.NoHistory)
				assert.True(t, cfg.Verbose)
			},
		},
		{
			name: "zero jobs gets default",
			setupViper: func() {
				viper.Reset()
				viper.Set("jobs", 0)
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultJobs, cfg.Jobs)
			},
		},
		{
			name: "negative jobs",
			setupViper: func() {
				viper.Reset()
				viper.Set("jobs", -2)
			},
			wantErr:     true,
			errContains: "invalid jobs count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupViper()

			cfg, err := Load()

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		wantErr     bool
		errContains string
		checkFields func(*testing.T, *Config)
	}{
		{
			name: "relative paths are resolved",
			config: &Config{
				ToolchainDir: "toolchain",
				TempDir:      "tmp",
				FrontendPath: "bin/swift-frontend",
				Jobs:         1,
			},
			checkFields: func(t *testing.T, cfg *Config) {
				assert.True(t, filepath.IsAbs(cfg.ToolchainDir))
				assert.True(t, filepath.IsAbs(cfg.TempDir))
				assert.True(t, filepath.IsAbs(cfg.FrontendPath))
			},
		},
		{
			name:   "bare tool names are kept",
			config: &Config{ArPath: "llvm-ar", Jobs: 4},
			checkFields: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "llvm-ar", cfg.ArPath)
			},
		},
		{
			name:   "empty paths stay empty",
			config: &Config{Jobs: 1},
			checkFields: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.ToolchainDir)
				assert.Empty(t, cfg.HistoryDir)
			},
		},
		{
			name:        "zero jobs",
			config:      &Config{Jobs: 0},
			wantErr:     true,
			errContains: "invalid jobs count: 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			if tt.checkFields != nil {
				tt.checkFields(t, tt.config)
			}
		})
	}
}

func TestConfig_ToolPath(t *testing.T) {
	exe := ""
	if runtime.GOOS == "windows" {
		exe = ".exe"
	}

	toolchain := filepath.Join(string(os.PathSeparator)+"opt", "swift")

	tests := []struct {
		name   string
		config *Config
		tool   job.Tool
		want   string
	}{
		{"bare name", &Config{}, job.ToolFrontend, "swift-frontend" + exe},
		{"toolchain dir", &Config{ToolchainDir: toolchain}, job.ToolClang, filepath.Join(toolchain, "bin", "clang"+exe)},
		{"explicit wins", &Config{ToolchainDir: toolchain, LDPath: "/usr/bin/ld"}, job.ToolLD, "/usr/bin/ld"},
		{"ar path covers llvm-ar", &Config{ArPath: "ar-wrapper"}, job.ToolLLVMAr, "ar-wrapper"},
		{"libtool", &Config{LibtoolPath: "/x/libtool"}, job.ToolLibtool, "/x/libtool"},
		{"autolink extract", &Config{AutolinkExtractPath: "ale"}, job.ToolAutolinkExtract, "ale"},
		{"dsymutil", &Config{DsymutilPath: "ds"}, job.ToolDsymutil, "ds"},
		{"indent from toolchain", &Config{ToolchainDir: toolchain}, job.ToolIndent, filepath.Join(toolchain, "bin", "swift-indent"+exe)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.ToolPath(tt.tool))
		})
	}
}
