package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/Norgate-AV/swiftdriver/internal/job"
)

// Default configuration values
const (
	DefaultSaveTemps = false
	DefaultNoHistory = false
	DefaultVerbose   = false

	historySubdir = "swiftdriver"
)

// DefaultJobs is the worker count used when none is configured
var DefaultJobs = runtime.NumCPU()

// Holds the configuration options for swiftdriver
type Config struct {
	// Root of a Swift toolchain; tools not configured individually are
	// looked up in its bin directory
	ToolchainDir string

	// Explicit tool paths
	FrontendPath        string
	LDPath              string
	ClangPath           string
	ArPath              string
	LibtoolPath         string
	AutolinkExtractPath string
	DsymutilPath        string

	// Parent directory for per-run scratch directories
	TempDir string

	// Directory holding the plan history database
	HistoryDir string

	// Maximum number of jobs run concurrently
	Jobs int

	// Keep temporary files after a run
	SaveTemps bool

	// Do not record runs in the history database
	NoHistory bool

	// Enable verbose output
	Verbose bool
}

func Load() (*Config, error) {
	cfg := &Config{
		ToolchainDir:        viper.GetString("toolchain_dir"),
		FrontendPath:        viper.GetString("frontend_path"),
		LDPath:              viper.GetString("ld_path"),
		ClangPath:           viper.GetString("clang_path"),
		ArPath:              viper.GetString("ar_path"),
		LibtoolPath:         viper.GetString("libtool_path"),
		AutolinkExtractPath: viper.GetString("autolink_extract_path"),
		DsymutilPath:        viper.GetString("dsymutil_path"),
		TempDir:             viper.GetString("temp_dir"),
		HistoryDir:          viper.GetString("history_dir"),
		Jobs:                viper.GetInt("jobs"),
		SaveTemps:           viper.GetBool("save_temps"),
		NoHistory:           viper.GetBool("no_history"),
		Verbose:             viper.GetBool("verbose"),
	}

	// Apply defaults if not set
	if cfg.Jobs == 0 {
		cfg.Jobs = DefaultJobs
	}

	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}

	if cfg.HistoryDir == "" {
		cfg.HistoryDir = DefaultHistoryDir()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultHistoryDir returns <user cache dir>/swiftdriver, or an empty string
// when the platform has no cache directory
func DefaultHistoryDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, historySubdir)
}

func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("invalid jobs count: %d", c.Jobs)
	}

	for _, dir := range []*string{&c.ToolchainDir, &c.TempDir, &c.HistoryDir} {
		if *dir == "" {
			continue
		}

		abs, err := filepath.Abs(*dir)
		if err != nil {
			return fmt.Errorf("invalid directory path: %v", err)
		}

		*dir = abs
	}

	// Bare tool names are left for a PATH lookup
	for _, tool := range c.toolPaths() {
		if *tool == "" || !strings.ContainsAny(*tool, `/\`) {
			continue
		}

		abs, err := filepath.Abs(*tool)
		if err != nil {
			return fmt.Errorf("invalid tool path: %v", err)
		}

		*tool = abs
	}

	return nil
}

func (c *Config) toolPaths() []*string {
	return []*string{
		&c.FrontendPath,
		&c.LDPath,
		&c.ClangPath,
		&c.ArPath,
		&c.LibtoolPath,
		&c.AutolinkExtractPath,
		&c.DsymutilPath,
	}
}

// ToolPath returns the executable used for a tool: the explicitly configured
// path, then <toolchain_dir>/bin/<name>, then the bare name
func (c *Config) ToolPath(tool job.Tool) string {
	var explicit string
	switch tool {
	case job.ToolFrontend:
		explicit = c.FrontendPath
	case job.ToolLD:
		explicit = c.LDPath
	case job.ToolClang:
		explicit = c.ClangPath
	case job.ToolAr, job.ToolLLVMAr:
		explicit = c.ArPath
	case job.ToolLibtool:
		explicit = c.LibtoolPath
	case job.ToolAutolinkExtract:
		explicit = c.AutolinkExtractPath
	case job.ToolDsymutil:
		explicit = c.DsymutilPath
	}

	if explicit != "" {
		return explicit
	}

	name := tool.Name()
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	if c.ToolchainDir != "" {
		return filepath.Join(c.ToolchainDir, "bin", name)
	}

	return name
}
