package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptlab/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the workspace configuration",
	}
	configCmd.AddCommand(newConfigInitCmd(a), newConfigShowCmd(a))
	return configCmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with default values",
		Long:        "Write config.yaml with default values to the workspace, or to --config if given.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfgFile
			if path == "" {
				path = a.ws.ConfigPath()
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			a.out.Line("Wrote %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying the config file and PROMPTLAB_*
environment overrides. With --defaults, print every key with its default
and description instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				return a.out.Render(config.DefaultEntries())
			}
			if file := a.cfg.ConfigFile(); file != "" {
				a.logger.Info("config file", "path", file)
			}
			return a.out.Render(a.cfg.Get())
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print default values and descriptions")
	return cmd
}
