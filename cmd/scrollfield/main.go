package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/scrollfield/internal/config"
	"github.com/san-kum/scrollfield/internal/gui"
	"github.com/san-kum/scrollfield/internal/logging"
	"github.com/san-kum/scrollfield/internal/pipeline"
	"github.com/san-kum/scrollfield/internal/scroll"
	"github.com/san-kum/scrollfield/internal/session"
	"github.com/san-kum/scrollfield/internal/smoothing"
	"github.com/san-kum/scrollfield/internal/tui"
)

var (
	dataDir string
	// Config file
	configFile string
	// Preset name
	preset string
	// Overrides of the loaded config
	fps       int
	particles int
	variant   string
	engine    string
	logLevel  string
	// Session store location
	sessionDir string
	sessionID  string
)

// main registers commands and flags and opens the window when no subcommand
// is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "scrollfield",
		Short:         "scroll-driven particle field page",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".scrollfield", "directory for recorded runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.IntVar(&particles, "particles", config.DefaultParticles, "particle count")
	pf.StringVar(&variant, "variant", "glow", "particle blend variant (glow, ink)")
	pf.StringVar(&engine, "engine", "ease", "scroll smoothing engine (ease, spring)")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&sessionDir, "session-dir", "", "session store directory")
	pf.StringVar(&sessionID, "session", "", "session id")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "preview the page in the terminal",
		RunE:  runTUI,
	}

	rootCmd.AddCommand(tuiCmd, newSnapshotCmd(), newTraceCmd(), newScenarioCmd(), newSweepCmd())
	rootCmd.AddCommand(newRunsCmds()...)
	rootCmd.AddCommand(newConfigCmd(), newPresetsCmd(), newSessionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig applies the preset, then the config file, then the flags that
// were set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" && !cfg.Apply(preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Window.FPS = fps
		cfg.Smoothing.FPS = fps
	}
	if flags.Changed("particles") {
		cfg.Particles.Count = particles
	}
	if flags.Changed("variant") {
		cfg.Particles.Variant = variant
	}
	if flags.Changed("engine") {
		cfg.Smoothing.Kind = smoothing.Kind(engine)
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("session-dir") {
		cfg.Scroll.SessionDir = sessionDir
	}
	if flags.Changed("session") {
		cfg.Scroll.SessionID = sessionID
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads config, builds the logger and opens the session store.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, session.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := logging.New(logging.Config{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, openSession(cfg, log), nil
}

// openSession falls back to memory when the session directory cannot be
// created. Scroll is then not restored on the next start.
func openSession(cfg *config.Config, log *zap.Logger) session.Store {
	dir, id := cfg.Scroll.SessionDir, cfg.Scroll.SessionID
	if dir == "" {
		dir = session.DefaultDir()
	}
	if id == "" {
		id = session.DefaultID()
	}
	st := session.NewFileStore(dir, id)
	if err := st.Init(); err != nil {
		log.Warn("session store unavailable", zap.Error(err))
		return session.NewMemoryStore()
	}
	log.Debug("session store", zap.String("path", st.Path()))
	return st
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, log, store, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()
	return gui.Run(gui.Options{Config: cfg, Store: store, Logger: log})
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, _, store, err := setup(cmd)
	if err != nil {
		return err
	}
	// the alternate screen owns the terminal
	mods := pipeline.NewModules(cfg)
	return tui.Run(tui.Options{Config: cfg, Store: store, Modules: &mods, Logger: logging.Nop()})
}

func newSessionCmd() *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "inspect or clear the saved scroll position",
	}

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "print the saved scroll position",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, store, err := setup(cmd)
			if err != nil {
				return err
			}
			v, err := store.Get(scroll.StorageKey)
			if errors.Is(err, session.ErrNotFound) {
				fmt.Println("no saved position")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	})

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "forget the saved scroll position",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, store, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := store.Delete(scroll.StorageKey); err != nil {
				return err
			}
			fmt.Println("scroll position cleared")
			return nil
		},
	})
	return sessionCmd
}
