package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptlab/internal/console"
	"github.com/jackzampolin/promptlab/internal/prompts"
	"github.com/jackzampolin/promptlab/internal/prompts/tone"
	"github.com/jackzampolin/promptlab/internal/providers"
	"github.com/jackzampolin/promptlab/internal/workspace"
)

func newToneCmd(a *app) *cobra.Command {
	var (
		requestedTone string
		messageFile   string
		showPrompt    bool
	)
	cmd := &cobra.Command{
		Use:   "tone",
		Short: "Rewrite an email draft in a requested tone",
		Long: `Substitute the tone and the email draft into the tone user template, whose
placeholders are bounded by delimiters, and print the rewritten message.

The draft defaults to 02_templates_delimiters/data/email_message_1.txt. The
tone is asked for on stdin unless --tone is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if messageFile == "" {
				messageFile = a.ws.DataPath(workspace.LessonTemplates, tone.DefaultMessageFile)
			}
			message, err := prompts.ReadFile(messageFile)
			if err != nil {
				return err
			}
			a.out.Section("Email message", message)

			if requestedTone == "" {
				a.out.Line("Let's adjust the tone of the email.")
				a.out.Line("For example, make it more professional, casual, direct, or polite.\n")
				requestedTone, err = a.in.Ask("What is your desired tone? ")
				if errors.Is(err, console.ErrNoInput) || (err == nil && requestedTone == "") {
					return fmt.Errorf("a tone is required: answer the question or pass --tone")
				}
				if err != nil {
					return err
				}
			}

			system, err := a.promptText(tone.SystemPromptKey)
			if err != nil {
				return err
			}
			user, err := a.render(tone.UserPromptKey, tone.Values(requestedTone, message))
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
			return nil
		},
	}
	cmd.Flags().StringVarP(&requestedTone, "tone", "t", "", "desired tone, e.g. pirate or professional")
	cmd.Flags().StringVarP(&messageFile, "file", "f", "", "email draft to rewrite")
	cmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "print the rendered user prompt")
	return cmd
}
