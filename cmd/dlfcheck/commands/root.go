package commands

import (
	"log/slog"

	"github.com/kitodo/dlfcheck/internal/config"
	"github.com/kitodo/dlfcheck/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	// cfg is loaded before any subcommand runs
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dlfcheck",
	Short: "dlfcheck validates library identifiers and URNs",
	Long: `A command-line tool for validating German National Library identifiers
(PPN, IDN, PND, ZDB, SWD, GKD) and computing URN check digits.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logCfg := logger.DefaultConfig()
		if logLevel != "" {
			logCfg.Level = logLevel
		}
		if logFormat != "" {
			logCfg.Format = logFormat
		}
		log := logger.WithExecutable(logger.NewLogger(logCfg), "dlfcheck")
		logger.SetDefault(log)
		slog.Debug("Configuration loaded", slog.String("config", configPath))
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (default from LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (default from LOG_FORMAT)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "check", Title: "Checks:"},
		&cobra.Group{ID: "records", Title: "Records:"},
		&cobra.Group{ID: "util", Title: "Utilities:"},
	)

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(ppnCmd)
	rootCmd.AddCommand(urnCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
}
