// Package rag holds the prompts of the retrieval lesson.
package rag

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
	SystemPromptKey = "rag.answer.system"
	UserPromptKey   = "rag.answer.user"
)

// Placeholders of the user template.
const (
	VarWebExtracts = "web_extracts"
	VarQuestion    = "question"
)

// SystemPrompt returns the system prompt for website Q&A.
func SystemPrompt() string {
	return systemPrompt
}

// UserTemplate returns the embedded user prompt template.
func UserTemplate() *prompts.Template {
	return prompts.FromString("rag_user_prompt", userPromptTmpl)
}

// Values returns the substitution map for the user template.
// extracts is the already formatted block of <section> elements.
func Values(extracts, question string) map[string]string {
	return map[string]string{
		VarWebExtracts: extracts,
		VarQuestion:    question,
	}
}

// RegisterPrompts registers the rag prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		File:        workspace.PromptFile(workspace.LessonRAG, "rag_system_prompt.txt"),
		Description: "Website Q&A system prompt",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         UserPromptKey,
		Text:        userPromptTmpl,
		File:        workspace.PromptFile(workspace.LessonRAG, "rag_user_prompt.txt"),
		Description: "Website Q&A user prompt template - extracts then question",
	})
}
