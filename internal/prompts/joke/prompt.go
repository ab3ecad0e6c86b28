// Package joke holds the prompts of the system-messages lesson.
package joke

import (
	_ "embed"

	"github.com/jackzampolin/promptlab/internal/prompts"
	"github.com/jackzampolin/promptlab/internal/workspace"
)

//go:embed system.tmpl
var systemPrompt string

//go:embed user.tmpl
var userPrompt string

// Prompt keys
const (
	SystemPromptKey = "system_messages.joke.system"
	UserPromptKey   = "system_messages.joke.user"
)

// SystemPrompt returns the comedian persona.
func SystemPrompt() string {
	return systemPrompt
}

// UserPrompt returns the joke request.
func UserPrompt() string {
	return userPrompt
}

// RegisterPrompts registers the joke prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		File:        workspace.PromptFile(workspace.LessonSystemMessages, "joke_system_prompt.txt"),
		Description: "Comedian persona for the joke lesson",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         UserPromptKey,
		Text:        userPrompt,
		File:        workspace.PromptFile(workspace.LessonSystemMessages, "joke_user_prompt.txt"),
		Description: "Plain joke request",
	})
}
