package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/api"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/config"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/shell"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	apiURL     string
	logFile    string
	plain      bool
)

var rootCmd = &cobra.Command{
	Use:   "trekpoint",
	Short: "TrekPoint - find nature trails from your terminal",
	Long: `TrekPoint signs you in, shows the map around you, fetches a fun
nature fact and lists nearby trails.

Run without arguments to start the interactive shell.`,
	SilenceUsage: true,
	RunE:         runShell,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "TrekPoint server URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write JSON logs to this file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "disable styled markdown output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runShell(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.New(cfg.APIURL, nil)
	logger.Info("shell starting", zap.String("api_url", cfg.APIURL))

	sh := shell.New(shell.Options{
		In:     os.Stdin,
		Out:    os.Stdout,
		Config: cfg,
		Auth:   client,
		Docs:   client,
		Facts:  client,
		Logger: logger,
		Plain:  plain,
	})
	return sh.Run(ctx)
}

// newLogger writes JSON lines to cfg.File. Without a file nothing is logged
// so the interactive output stays clean.
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{cfg.File}
	zcfg.ErrorOutputPaths = []string{cfg.File}
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zcfg.Build()
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "trekpoint.yaml"
	}
	return filepath.Join(dir, "trekpoint", "config.yaml")
}

