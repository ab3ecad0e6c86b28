package main

import (
	"github.com/spf13/cobra"
)

func newPromptsCmd(a *app) *cobra.Command {
	promptsCmd := &cobra.Command{
		Use:   "prompts",
		Short: "Inspect lesson prompts and workspace overrides",
		Long: `Every lesson prompt is compiled in. A file at the listed path in the
workspace replaces the built-in text.`,
	}
	promptsCmd.AddCommand(newPromptsListCmd(a), newPromptsShowCmd(a))
	return promptsCmd
}

type promptInfo struct {
	Key         string   `json:"key" yaml:"key"`
	Description string   `json:"description" yaml:"description"`
	File        string   `json:"file" yaml:"file"`
	Source      string   `json:"source" yaml:"source"`
	IsOverride  bool     `json:"is_override" yaml:"is_override"`
	Variables   []string `json:"variables,omitempty" yaml:"variables,omitempty"`
	Hash        string   `json:"hash" yaml:"hash"`
}

func newPromptsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List prompt keys and where their text comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var infos []promptInfo
			for _, e := range a.resolver.AllEmbedded() {
				resolved, err := a.resolver.Resolve(e.Key)
				if err != nil {
					return err
				}
				infos = append(infos, promptInfo{
					Key:         e.Key,
					Description: e.Description,
					File:        e.File,
					Source:      resolved.Source,
					IsOverride:  resolved.IsOverride,
					Variables:   resolved.Variables,
					Hash:        resolved.Hash,
				})
			}
			return a.out.Render(infos)
		},
	}
}

func newPromptsShowCmd(a *app) *cobra.Command {
	var embedded bool
	cmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Print the text of a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := a.resolver.Resolve(args[0])
			if err != nil {
				return err
			}
			if embedded && resolved.IsOverride {
				e, _ := a.resolver.GetEmbedded(args[0])
				a.out.Section(e.Key, e.Text)
				return nil
			}
			a.logger.Info("prompt source", "key", resolved.Key, "source", resolved.Source)
			a.out.Section(resolved.Key, resolved.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&embedded, "embedded", false, "print the built-in text even if the workspace overrides it")
	return cmd
}
