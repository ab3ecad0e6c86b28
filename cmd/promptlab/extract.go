package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptlab/internal/extract"
	"github.com/jackzampolin/promptlab/internal/prompts"
	"github.com/jackzampolin/promptlab/internal/prompts/claim"
	"github.com/jackzampolin/promptlab/internal/providers"
	"github.com/jackzampolin/promptlab/internal/workspace"
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		transcriptFile string
		parse          bool
		lenient        bool
		validate       bool
		showPrompt     bool
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract insurance claim fields from a call transcript as JSON",
		Long: `Send a call transcript with a system prompt describing the claim fields and
print the model's JSON reply.

--parse decodes the reply; a reply that isn't JSON fails with
structured_response_invalid after the raw text has been printed.
--lenient also accepts JSON inside code fences or prose and repairs small
syntax errors. --validate checks the parsed object against the claim JSON
Schema and logs any mismatch without changing the result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if transcriptFile == "" {
				transcriptFile = a.ws.DataPath(workspace.LessonExtraction, claim.DefaultTranscriptFile)
			}
			transcript, err := prompts.ReadFile(transcriptFile)
			if err != nil {
				return err
			}

			system, err := a.promptText(claim.SystemPromptKey)
			if err != nil {
				return err
			}
			user, err := a.render(claim.UserPromptKey, map[string]string{claim.VarTranscriptText: transcript})
			if err != nil {
				return err
			}
			if showPrompt {
				a.out.Section("User prompt", user)
			}

			res, err := a.chat(cmd.Context(), providers.SystemMessage(system), providers.UserMessage(user))
			if err != nil {
				return err
			}
			a.out.Section("Response message content", res.Content)

			if !parse && !lenient && !validate {
				return nil
			}

			var opts []extract.Option
			if lenient {
				opts = append(opts, extract.Lenient())
			}
			result, err := extract.Parse(res.Content, opts...)
			if err != nil {
				return err
			}
			if result.Repaired() {
				a.logger.Warn("response needed recovery before parsing", "recovery", result.Recovery)
			}

			if validate {
				if err := extract.Validate(claim.Schema, result); err != nil {
					a.logger.Warn("extracted claim does not match schema", "error", err)
				} else {
					a.logger.Info("extracted claim matches schema")
				}
			}
			return a.out.Titled("Extracted claim", result.Value)
		},
	}
	cmd.Flags().StringVarP(&transcriptFile, "file", "f", "", "call transcript to extract from")
	cmd.Flags().BoolVar(&parse, "parse", false, "parse the reply as JSON")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "recover JSON from fences, prose or small syntax errors (implies --parse)")
	cmd.Flags().BoolVar(&validate, "validate", false, "check the parsed claim against its JSON Schema (implies --parse)")
	cmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "print the rendered user prompt")
	return cmd
}
