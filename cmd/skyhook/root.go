package main

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/avasek/skyhook/internal/version"
	"github.com/avasek/skyhook/pkg/cobrax/topics"
	"github.com/avasek/skyhook/pkg/config"
	"github.com/avasek/skyhook/pkg/logging"
)

//go:embed topics
var builtinTopics embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		debug     bool
		dryRun    bool
		cfgPath   string
	)

	rootCmd := &cobra.Command{
		Use:     "skyhook",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity; --debug forces the
			// DEBUG level no matter how many -v were given.
			if debug && verbosity < 2 {
				verbosity = 2
			}
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but report incorrect usage.
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, MsgFlagDebug)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", MsgFlagConfig)

	// Disable automatic help command (the topics system installs its own)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Add all commands
	rootCmd.AddCommand(newUpCmd())
	rootCmd.AddCommand(newMountCmd())
	rootCmd.AddCommand(newBridgeCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize the topic-based help system from the embedded tree.
	if topicsFS, err := fs.Sub(builtinTopics, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".txt", ".md"},
			// Always use Glamour renderer for markdown files
			Renderer: topics.NewGlamourRenderer(),
		}
		if err := topics.InitializeWithOptions(rootCmd, topicsFS, opts); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

// loadSettings resolves the configuration for a command run, honoring
// the --config and --dry-run persistent flags.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

	settings, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	settings.DryRun = dryRun
	return settings, nil
}
