package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/foldermv/cmd/foldermv/commands"
	"github.com/walteh/foldermv/cmd/foldermv/opts"
	"github.com/walteh/foldermv/pkg/config"
	"github.com/walteh/foldermv/pkg/log"
	"github.com/walteh/foldermv/pkg/store"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile   string
	basePath     string
	folderList   string
	dryRun       bool
	createBase   bool
	assumeYes    bool
	restartShell bool
	debug        bool
)

// defaultConfigFile is picked up from the working directory when --config
// is not given.
const defaultConfigFile = ".foldermv.hcl"

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "foldermv",
		Short: "Relocate user profile folders to a new base directory",
		Long: `foldermv moves the well-known user folders (Documents, Downloads,
Pictures, ...) under a new base directory, rebinds the OS folder-location
store so everything keeps resolving, and migrates the existing contents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	addRootFlags(cmd)

	cmd.AddCommand(commands.NewMoveCmd(newRootOpts))
	cmd.AddCommand(commands.NewPlanCmd(newRootOpts))
	cmd.AddCommand(commands.NewListCmd(newRootOpts))

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (.hcl or .yaml)")
	cmd.PersistentFlags().StringVarP(&basePath, "base", "b", "", "base directory the folders are moved under")
	cmd.PersistentFlags().StringVarP(&folderList, "folders", "f", "", "comma-separated folder names or menu indices (empty selects interactively)")
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "report what would change without touching anything")
	cmd.PersistentFlags().BoolVar(&createBase, "create-base", false, "create the base directory without asking")
	cmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to every prompt")
	cmd.PersistentFlags().BoolVar(&restartShell, "restart-shell", false, "restart the shell process after a changing run")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}

// newRootOpts assembles shared dependencies from config file and flags.
// Flags win over the file.
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	cfg := &config.Config{}
	path := configFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if basePath != "" {
		cfg.BasePath = basePath
	}
	if folderList != "" {
		cfg.Folders = strings.Split(folderList, ",")
	}
	if dryRun {
		cfg.DryRun = true
	}
	if createBase {
		cfg.CreateBase = true
	}
	if assumeYes {
		cfg.Yes = true
	}
	if restartShell {
		cfg.RestartShell = true
	}

	if cfg.BasePath != "" {
		abs, err := filepath.Abs(cfg.BasePath)
		if err != nil {
			return nil, errors.Errorf("resolving base path: %w", err)
		}
		cfg.BasePath = abs
	}

	st, err := store.System()
	if err != nil {
		return nil, errors.Errorf("opening location store: %w", err)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return &opts.RootOpts{
		Config: cfg,
		Store:  st,
		Logger: log.New(os.Stdout, level),
	}, nil
}
