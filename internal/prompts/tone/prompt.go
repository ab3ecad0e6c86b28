// Package tone holds the prompts of the templates and delimiters lesson.
package tone

import (
	_ "embed"

	"github.com/jackzampolin/promptlab/internal/prompts"
	"github.com/jackzampolin/promptlab/internal/workspace"
)

//go:embed system.tmpl
var systemPrompt string

//go:embed user.tmpl
var userPromptTmpl string

// Prompt keys
const (
	SystemPromptKey = "templates.tone.system"
	UserPromptKey   = "templates.tone.user"
)

// Placeholders of the user template.
const (
	VarRequestedTone = "requested_tone"
	VarMessageText   = "message_text"
)

// DefaultMessageFile is the email draft read when none is given.
const DefaultMessageFile = "email_message_1.txt"

// SystemPrompt returns the system prompt for tone rewriting.
func SystemPrompt() string {
	return systemPrompt
}

// UserTemplate returns the embedded user prompt template.
func UserTemplate() *prompts.Template {
	return prompts.FromString("tone_user_prompt", userPromptTmpl)
}

// Values returns the substitution map for the user template.
func Values(requestedTone, messageText string) map[string]string {
	return map[string]string{
		VarRequestedTone: requestedTone,
		VarMessageText:   messageText,
	}
}

// UserPrompt builds the user prompt from the embedded template.
func UserPrompt(requestedTone, messageText string) (string, error) {
	return prompts.Build(UserTemplate(), Values(requestedTone, messageText))
}

// RegisterPrompts registers the tone prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		File:        workspace.PromptFile(workspace.LessonTemplates, "tone_system_prompt.txt"),
		Description: "Tone rewriting system prompt",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         UserPromptKey,
		Text:        userPromptTmpl,
		File:        workspace.PromptFile(workspace.LessonTemplates, "tone_user_prompt.txt"),
		Description: "Tone rewriting user prompt template - message in triple quotes",
	})
}
