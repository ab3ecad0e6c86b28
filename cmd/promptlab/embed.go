package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptlab/internal/rag"
)

// shownElements is how many leading vector elements are printed.
const shownElements = 5

func newEmbedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "embed [text...]",
		Short: "Print the embedding of a text",
		Long:  "Embed the text given as arguments, or asked for on stdin, and print an abbreviated vector.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				a.out.Line("Enter some text and we'll return an embedding of the text.\n")
			}
			text, err := a.readInput(args, "Text: ")
			if err != nil {
				return err
			}

			res, err := a.embed(cmd.Context(), text)
			if err != nil {
				return err
			}
			err = a.out.Titled("Response from embedding API", map[string]any{
				"model":         res.ModelUsed,
				"prompt_tokens": res.PromptTokens,
				"embedding":     rag.AbbreviateVector(res.Vector, shownElements),
			})
			if err != nil {
				return err
			}
			a.out.Line("Length of embedding vector: %d", len(res.Vector))
			return nil
		},
	}
}

func newSimilarityCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "similarity [text...]",
		Short: "Compare the embeddings of several texts",
		Long: `Embed each text and print the cosine similarity of each text with the
next one, the last compared with the first. Texts come from the arguments,
or --count texts are asked for on stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := args
			if len(texts) == 0 {
				if count < 2 {
					return fmt.Errorf("--count must be at least 2")
				}
				a.out.Line("Enter %d pieces of text and we'll compare their embedding vectors.\n", count)
				for i := 0; i < count; i++ {
					text, err := a.readInput(nil, fmt.Sprintf("Text %d: ", i+1))
					if err != nil {
						return err
					}
					texts = append(texts, text)
				}
			}
			if len(texts) < 2 {
				return fmt.Errorf("at least 2 texts are needed, got %d", len(texts))
			}

			vectors := make([][]float64, len(texts))
			for i, text := range texts {
				res, err := a.embed(cmd.Context(), text)
				if err != nil {
					return err
				}
				vectors[i] = res.Vector
				a.out.Line("Embedding vector %d: %s", i+1, rag.AbbreviateVector(res.Vector, shownElements))
			}
			a.out.Line("")

			for i := range vectors {
				j := (i + 1) % len(vectors)
				s := rag.CosineSimilarity(vectors[i], vectors[j])
				a.out.Line("Cosine similarity between Text %d and Text %d: %.4f", i+1, j+1, s)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 3, "number of texts to ask for when none are given")
	return cmd
}
