// Package claim holds the prompts of the data extraction lesson.
package claim

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
	SystemPromptKey = "extraction.claim.system"
	UserPromptKey   = "extraction.claim.user"
)

// VarTranscriptText is the only placeholder of the user template.
const VarTranscriptText = "transcript_text"

// DefaultTranscriptFile is the call transcript read when none is given.
const DefaultTranscriptFile = "call_transcript_1.txt"

// SystemPrompt returns the system prompt describing the claim fields.
func SystemPrompt() string {
	return systemPrompt
}

// UserTemplate returns the embedded user prompt template.
func UserTemplate() *prompts.Template {
	return prompts.FromString("extract_claim_user_prompt", userPromptTmpl)
}

// UserPrompt builds the user prompt for a transcript.
func UserPrompt(transcript string) (string, error) {
	return prompts.Build(UserTemplate(), map[string]string{VarTranscriptText: transcript})
}

// RegisterPrompts registers the claim prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		File:        workspace.PromptFile(workspace.LessonExtraction, "extract_claim_system_prompt.txt"),
		Description: "Claim extraction system prompt - describes the JSON fields",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         UserPromptKey,
		Text:        userPromptTmpl,
		File:        workspace.PromptFile(workspace.LessonExtraction, "extract_claim_user_prompt.txt"),
		Description: "Claim extraction user prompt template - transcript in tags",
	})
}
