package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptlab/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			a.out.Line("promptlab %s", info.Release)
			a.out.Line("  Go:     %s", info.Go)
			a.out.Line("  Commit: %s", info.Commit)
			a.out.Line("  Date:   %s", info.CommitDate)
		},
	}
}
