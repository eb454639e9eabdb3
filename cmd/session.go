package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/swiftdriver/internal/codes"
	"github.com/Norgate-AV/swiftdriver/internal/config"
	"github.com/Norgate-AV/swiftdriver/internal/driver"
	"github.com/Norgate-AV/swiftdriver/internal/executor"
	"github.com/Norgate-AV/swiftdriver/internal/history"
	"github.com/Norgate-AV/swiftdriver/internal/job"
	"github.com/Norgate-AV/swiftdriver/internal/logging"
	"github.com/Norgate-AV/swiftdriver/internal/options"
)

// session is one resolved and planned driver invocation
type session struct {
	drv     *driver.Driver
	cfg     *config.Config
	log     *logging.Logger
	jobs    []*job.Job
	workDir string
}

func newSession(cmd *cobra.Command, invocation []string) (*session, error) {
	drv, err := driver.New(invocation)
	if err != nil {
		return nil, codes.WithCode(codes.ExitInvalidInvocation, err)
	}

	workDir := drv.WorkingDirectory()
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return nil, codes.WithCode(codes.ExitInvalidInvocation, fmt.Errorf("failed to get working directory: %w", err))
		}
	}

	cfg, err := loadConfig(cmd, workDir)
	if err != nil {
		return nil, err
	}

	if err := applyInvocationSettings(cfg, drv); err != nil {
		return nil, err
	}

	log := logging.New(cfg.Verbose)
	if cmd != nil {
		log.Out = cmd.OutOrStdout()
		log.Err = cmd.ErrOrStderr()
	}

	jobs, err := drv.PlanBuild()
	if err != nil {
		return nil, codes.WithCode(codes.ExitInvalidInvocation, fmt.Errorf("failed to plan build: %w", err))
	}

	log.Diagnostics(drv.Diagnostics().Diagnostics())

	return &session{
		drv:     drv,
		cfg:     cfg,
		log:     log,
		jobs:    jobs,
		workDir: workDir,
	}, nil
}

func loadConfig(cmd *cobra.Command, workDir string) (*config.Config, error) {
	var explicit string
	if cmd != nil {
		if f := cmd.Flags().Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
	}

	cfg, err := config.NewLoader().LoadForDriver(cmd, workDir, explicit)
	if err != nil {
		return nil, codes.WithCode(codes.ExitConfigError, fmt.Errorf("failed to load config: %w", err))
	}

	return cfg, nil
}

// applyInvocationSettings lets -j, -save-temps and -v in the invocation
// override the configuration
func applyInvocationSettings(cfg *config.Config, drv *driver.Driver) error {
	args := drv.Args()
	if args == nil {
		return nil
	}

	if arg, ok := args.LastArgument(options.Jobs); ok {
		n, err := strconv.Atoi(arg.Value)
		if err != nil || n < 1 {
			return codes.Errorf(codes.ExitInvalidInvocation, "invalid value '%s' in '-j'", arg.Value)
		}
		cfg.Jobs = n
	}

	if args.HasArgument(options.SaveTemps) {
		cfg.SaveTemps = true
	}

	if args.HasArgument(options.Verbose) {
		cfg.Verbose = true
	}

	return nil
}

// inputFiles returns the on-disk input paths for hashing
func (s *session) inputFiles() []string {
	var files []string
	for _, in := range s.drv.Inputs() {
		if in.File.IsStandardStream() || in.File.IsTemporary() {
			continue
		}

		name := in.File.Name()
		if !filepath.IsAbs(name) {
			name = filepath.Join(s.workDir, name)
		}
		files = append(files, name)
	}

	return files
}

// record stores the run in the history database. Failures only warn.
func (s *session) record(executed, success bool, result *executor.Result) {
	if s.cfg.NoHistory {
		return
	}

	h, err := history.New(s.cfg.HistoryDir)
	if err != nil {
		s.log.Warning("History", err.Error())
		return
	}
	defer h.Close()

	hash, err := history.HashInvocation(s.drv.Invocation(), s.workDir, s.inputFiles(), s.cfg)
	if err != nil {
		s.log.Warning("History", err.Error())
		return
	}

	diags := s.drv.Diagnostics().Diagnostics()
	rendered := make([]string, 0, len(diags))
	for _, d := range diags {
		rendered = append(rendered, d.String())
	}

	rec := &history.Record{
		Hash:             hash,
		Invocation:       s.drv.Invocation(),
		WorkingDirectory: s.workDir,
		DriverKind:       s.drv.Kind().String(),
		Target:           s.drv.Target().String(),
		ModuleName:       s.drv.ModuleName(),
		Jobs:             history.RecordJobs(s.jobs),
		Diagnostics:      rendered,
		Executed:         executed,
		Success:          success,
	}

	if result != nil && len(result.Temporaries) > 0 {
		rec.Scratch = result.Scratch
		rec.Temporaries = result.Temporaries
	}

	if err := h.Store(rec); err != nil {
		s.log.Warning("History", err.Error())
		return
	}

	s.log.Debug("recorded run %s", hash[:12])
}
