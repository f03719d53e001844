// Package main provides the CLI entry point for bookcat.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/bookcat-go/internal/config"
	"github.com/ukaji3/bookcat-go/internal/logging"
	"github.com/ukaji3/bookcat-go/internal/tui"
	"github.com/ukaji3/bookcat-go/pkg/bookcat"
)

var (
	configPath string
	logLevel   string
	logPath    string
	password   string
	dataFile   string
)

// app is what every command runs against, built once in PersistentPreRunE.
type app struct {
	cfg   *config.AppConfig
	lib   *bookcat.Library
	store *bookcat.Store
}

var current app

func main() {
	err := newRootCmd().Execute()
	logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bookcat [file]",
		Short: "Browse and maintain a spreadsheet book catalog",
		Long: `bookcat keeps a library book catalog in an xlsx or csv file.

Run without a subcommand to open the interactive catalog. Librarians
unlock editing and statistics with the librarian password.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runInteractive,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultPath, "Config file path")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&logPath, "log-file", "", "Write logs to this file")
	flags.StringVar(&password, "password", "", "Librarian password for admin commands")
	flags.StringVarP(&dataFile, "file", "f", "", "Catalog file (default: last used file)")

	rootCmd.AddCommand(
		newNewCmd(),
		newLoadCmd(),
		newSearchCmd(),
		newStatsCmd(),
		newBackupCmd(),
		newAddCmd(),
		newDeleteCmd(),
		newSetCmd(),
		newExportCmd(),
		newConvertCmd(),
		newHashSecretCmd(),
	)
	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}

	if err := initLogging(cmd, cfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	auth, err := newAuthenticator(cfg)
	if err != nil {
		return err
	}

	opts := bookcat.DefaultOptions()
	if cfg.BackupDir != "" {
		opts.BackupDir = cfg.BackupDir
	}
	if cfg.StatsColumn != "" {
		opts.StatsColumn = cfg.StatsColumn
	}
	if len(cfg.DefaultColumns) > 0 {
		opts.DefaultColumns = cfg.DefaultColumns
	}

	store := bookcat.NewStore(opts)
	current = app{
		cfg:   cfg,
		store: store,
		lib:   bookcat.NewLibrary(store, auth, config.NewRecorder(configPath, cfg), opts),
	}
	return nil
}

// initLogging sends logs to stderr for subcommands. The interactive
// catalog owns the terminal, so it logs to a file or nowhere.
func initLogging(cmd *cobra.Command, cfg *config.AppConfig) error {
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	path := cfg.Log.Path
	if logPath != "" {
		path = logPath
	}
	return logging.Init(logging.Config{
		Level:      logging.ParseLevel(level),
		OutputPath: path,
		Format:     cfg.Log.Format,
		Discard:    cmd.Parent() == nil,
	})
}

func newAuthenticator(cfg *config.AppConfig) (bookcat.Authenticator, error) {
	if cfg.Auth.SecretHash != "" {
		h, err := bookcat.NewHashedSecret(cfg.Auth.SecretHash)
		if err != nil {
			return nil, fmt.Errorf("invalid auth.secret_hash: %w", err)
		}
		return h, nil
	}
	return bookcat.NewSharedSecret(cfg.ResolveSecret()), nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	path := dataFile
	if len(args) == 1 {
		path = args[0]
	}

	var startupErr error
	switch {
	case path != "":
		startupErr = current.lib.Open(path)
	case current.cfg.DataFile != "":
		startupErr = current.lib.Resume(current.cfg.DataFile)
	}
	if startupErr != nil {
		logging.WithFile(current.lib.Path()).Warn("startup load failed", "error", startupErr)
	}

	if err := tui.Run(current.lib, startupErr); err != nil {
		logging.WithError(err).Error("terminal UI failed")
		return err
	}
	return nil
}

// resolveFile picks the catalog file for a subcommand: --file, else the
// config's data_file.
func resolveFile() (string, error) {
	if dataFile != "" {
		return dataFile, nil
	}
	if current.cfg.DataFile != "" {
		return current.cfg.DataFile, nil
	}
	return "", fmt.Errorf("%w: pass --file or run 'bookcat load <file>'", bookcat.ErrNoActiveFile)
}

// openActive loads the catalog file into the library.
func openActive() error {
	path, err := resolveFile()
	if err != nil {
		return err
	}
	return current.lib.Open(path)
}

// requireAdmin authenticates with --password and fails unless that grants
// the admin role.
func requireAdmin() error {
	if !current.lib.Authenticate(password).CanEdit() {
		return fmt.Errorf("%w: pass the librarian --password", bookcat.ErrAdminOnly)
	}
	return nil
}
