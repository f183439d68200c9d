package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tracker/internal/checklist"
	"tracker/internal/config"
	"tracker/internal/logging"
	"tracker/internal/storage"
	"tracker/internal/tracker"
	"tracker/internal/ui"
)

// app is the wiring shared by every subcommand.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	store   *storage.Store
	tracker *tracker.Tracker
}

type options struct {
	configPath    string
	checklistPath string
	ephemeral     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	a := &app{}

	root := &cobra.Command{
		Use:   "tracker",
		Short: "Checklist tracker with persistent progress",
		Long: `tracker shows a fixed checklist grouped into sections, remembers which
tasks are checked between runs, and reports overall and per-section progress.

Run without arguments to open the interactive checklist.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(a.tracker, a.cfg)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: user config dir)")
	root.PersistentFlags().StringVar(&opts.checklistPath, "checklist", "", "checklist definition YAML (overrides config)")
	root.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "keep state in memory only")

	root.AddCommand(
		newStatusCmd(a),
		newToggleCmd(a),
		newResetCmd(a),
		newPrintCmd(a),
	)
	return root
}

func (a *app) open(opts *options) error {
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.checklistPath != "" {
		cfg.ChecklistPath = opts.checklistPath
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	def, err := checklist.Load(cfg.ChecklistPath)
	if err != nil {
		return fmt.Errorf("failed to load checklist: %w", err)
	}

	var backend storage.Backend
	if opts.ephemeral {
		backend = storage.NewMemory()
	} else {
		backend, err = storage.OpenBackend(cfg)
		if err != nil {
			return fmt.Errorf("failed to open state store: %w", err)
		}
	}
	a.store = storage.New(backend, cfg.StateKey,
		storage.WithLogger(a.logger.Named("storage")),
		storage.WithLayout(def.Fingerprint()))

	a.tracker = tracker.New(def, a.store, tracker.WithLogger(a.logger.Named("tracker")))
	a.tracker.Hydrate()
	a.logger.Debug("tracker ready",
		zap.String("config", configPath),
		zap.String("backend", cfg.Backend),
		zap.Int("tasks", a.tracker.Len()))
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.logger != nil {
			a.logger.Warn("failed to close state store", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
