package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/avasek/skyhook/internal/version"
	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/mount"
	"github.com/avasek/skyhook/pkg/provision"
	"github.com/avasek/skyhook/pkg/style"
	"github.com/avasek/skyhook/pkg/types"
)

// parseKinds maps --kind values to mount kinds.
func parseKinds(values []string) ([]types.MountKind, error) {
	var kinds []types.MountKind
	for _, v := range values {
		kind := types.MountKind(strings.ToLower(v))
		if !kind.Valid() {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"unknown mount kind %q (want webdav or smb)", v)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func newUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "up",
		Short:   MsgUpShort,
		Long:    MsgUpLong,
		Example: MsgUpExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			kindValues, _ := cmd.Flags().GetStringSlice("kind")
			kinds, err := parseKinds(kindValues)
			if err != nil {
				return err
			}
			qualifier, _ := cmd.Flags().GetString("qualifier")

			log.Info().
				Bool("dry_run", settings.DryRun).
				Strs("kinds", kindValues).
				Msg("Provisioning remote storage")

			result, err := provision.Up(cmd.Context(), provision.UpOptions{
				Settings:  settings,
				Kinds:     kinds,
				Qualifier: qualifier,
			})
			if err != nil {
				return err
			}

			if settings.DryRun {
				fmt.Println(MsgDryRunNotice)
			}
			fmt.Println(style.RenderUpResult(result))
			return nil
		},
	}

	cmd.Flags().StringSlice("kind", nil, MsgFlagKind)
	cmd.Flags().String("qualifier", "", MsgFlagQualifier)

	return cmd
}

// mountOverrides maps the mount command's override flags to dotted
// settings keys for the given kind.
func mountOverrides(kind types.MountKind, address, share, mountPoint string) (map[string]interface{}, error) {
	overrides := make(map[string]interface{})
	if address != "" {
		key := string(kind) + ".host"
		if kind == types.MountWebDAV {
			key = string(kind) + ".url"
		}
		overrides[key] = address
	}
	if share != "" {
		if kind != types.MountSMB {
			return nil, errors.New(errors.ErrInvalidInput, "--share only applies to smb mounts")
		}
		overrides[string(kind)+".share"] = share
	}
	if mountPoint != "" {
		overrides[string(kind)+".mountpoint"] = mountPoint
	}
	return overrides, nil
}

func newMountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "mount <webdav|smb>",
		Short:     MsgMountShort,
		Long:      MsgMountLong,
		GroupID:   "core",
		ValidArgs: mount.Kinds(),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			kind := types.MountKind(args[0])
			address, _ := cmd.Flags().GetString("address")
			share, _ := cmd.Flags().GetString("share")
			mountPoint, _ := cmd.Flags().GetString("mountpoint")
			overrides, err := mountOverrides(kind, address, share, mountPoint)
			if err != nil {
				return err
			}
			settings, err = settings.With(overrides)
			if err != nil {
				return err
			}

			outcome, err := provision.Mount(cmd.Context(), provision.MountOptions{
				Settings: settings,
				Kind:     kind,
			})
			if err != nil {
				return err
			}

			if settings.DryRun {
				fmt.Println(MsgDryRunNotice)
			}
			fmt.Println(style.RenderMountOutcome(outcome))
			return nil
		},
	}

	cmd.Flags().String("address", "", MsgFlagAddress)
	cmd.Flags().String("share", "", MsgFlagShare)
	cmd.Flags().String("mountpoint", "", MsgFlagMountPoint)

	return cmd
}

func newBridgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bridge",
		Short:   MsgBridgeShort,
		Long:    MsgBridgeLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			qualifier, _ := cmd.Flags().GetString("qualifier")

			br, err := provision.Bridge(provision.BridgeOptions{
				Settings:  settings,
				Qualifier: qualifier,
			})
			if err != nil {
				return err
			}

			if settings.DryRun {
				fmt.Println(MsgDryRunNotice)
			}
			fmt.Println(style.RenderBridge(br))
			return nil
		},
	}

	cmd.Flags().String("qualifier", "", MsgFlagQualifier)

	return cmd
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			result, err := provision.Sync(cmd.Context(), provision.SyncOptions{
				Settings: settings,
			})
			if err != nil {
				return err
			}

			if settings.DryRun {
				fmt.Println(MsgDryRunNotice)
			}
			fmt.Println(style.RenderMirror(result))
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			formatValue, _ := cmd.Flags().GetString("format")
			format, err := style.ParseFormat(formatValue)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --format value")
			}

			report, err := provision.Status(cmd.Context(), provision.StatusOptions{
				Settings: settings,
			})
			if err != nil {
				return err
			}

			if format == style.FormatAuto {
				format = style.DetectFormat(os.Stdout)
			}
			switch format {
			case style.FormatYAML:
				out, err := yaml.Marshal(report)
				if err != nil {
					return errors.Wrap(err, errors.ErrInternal, "failed to render report as YAML")
				}
				fmt.Print(string(out))
			case style.FormatText:
				style.ForcePlain()
				fmt.Println(style.RenderReport(report))
			default:
				fmt.Println(style.RenderReport(report))
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "auto", MsgFlagFormat)

	return cmd
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Long:  MsgConfigShowLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			out, err := settings.Dump(format)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}
	showCmd.Flags().StringP("format", "f", "toml", MsgFlagConfigFormat)

	configCmd.AddCommand(showCmd)

	return configCmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("skyhook version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate bash completion")
				}
			case "zsh":
				if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate zsh completion")
				}
			case "fish":
				if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
					log.Error().Err(err).Msg("Failed to generate fish completion")
				}
			case "powershell":
				if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate powershell completion")
				}
			}
		},
	}
}
