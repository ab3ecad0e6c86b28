package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptlab/internal/prompts/joke"
	"github.com/jackzampolin/promptlab/internal/providers"
)

func newJokeCmd(a *app) *cobra.Command {
	var withSystem bool
	cmd := &cobra.Command{
		Use:   "joke",
		Short: "Ask the model for a joke",
		Long: `Send "Tell me a joke." and print the request, the API response object and
the reply. With --system the comedian system message is sent first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var msgs []providers.Message
			if withSystem {
				system, err := a.promptText(joke.SystemPromptKey)
				if err != nil {
					return err
				}
				msgs = append(msgs, providers.SystemMessage(system))
			}
			user, err := a.promptText(joke.UserPromptKey)
			if err != nil {
				return err
			}
			msgs = append(msgs, providers.UserMessage(user))

			if err := a.out.Titled("Request messages", msgs); err != nil {
				return err
			}

			res, err := a.chat(cmd.Context(), msgs...)
			if err != nil {
				return err
			}
			if err := a.out.Titled("API response object", responseObject(res)); err != nil {
				return err
			}
			a.out.Section("Response message content", res.Content)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withSystem, "system", false, "send the comedian system message")
	return cmd
}
