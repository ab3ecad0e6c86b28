package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptlab/internal/console"
	ragprompt "github.com/jackzampolin/promptlab/internal/prompts/rag"
	"github.com/jackzampolin/promptlab/internal/providers"
	"github.com/jackzampolin/promptlab/internal/rag"
)

const rule = "------------------------------------"

func newRAGCmd(a *app) *cobra.Command {
	ragCmd := &cobra.Command{
		Use:   "rag",
		Short: "Retrieval-augmented answers about the Ka-Pow! website",
		Long: `The RAG lesson in four steps:

  rag split       split the home page into sections by its headers
  rag vectorize   embed every section of every page into a CSV file
  rag prompt      build the answer prompt for a question
  rag ask         send that prompt and print the answer`,
	}
	ragCmd.AddCommand(
		newRAGSplitCmd(a),
		newRAGVectorizeCmd(a),
		newRAGPromptCmd(a),
		newRAGAskCmd(a),
	)
	return ragCmd
}

func newRAGSplitCmd(a *app) *cobra.Command {
	var page string
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split an HTML page into sections by its headers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if page == "" {
				page = a.ws.HomePagePath()
			}
			splitter := rag.NewHeaderSplitter(a.cfg.Get().RAG.HeaderLevels)
			sections, err := splitter.SplitFile(page)
			if err != nil {
				return err
			}

			for i, s := range sections {
				a.out.Line("Split: %d", i+1)
				if err := a.out.Titled("Metadata", s.Metadata()); err != nil {
					return err
				}
				a.out.Section("Content", s.Content)
			}
			a.out.Line("Identified the headers in %s", filepath.Base(page))
			a.out.Line("and used them to split the file into %d units of self-contained information.", len(sections))
			return nil
		},
	}
	cmd.Flags().StringVarP(&page, "file", "f", "", "HTML page to split (default: 04_rag/data/source/ka-pow.html)")
	return cmd
}

func newRAGVectorizeCmd(a *app) *cobra.Command {
	var sourceDir, outPath string
	cmd := &cobra.Command{
		Use:   "vectorize",
		Short: "Embed every section of every page into a vector file",
		Long: `Split each *.html page of the source directory, embed each section's path
and content, and write Page, Section, Content and Embedding columns to a CSV
file. Embedding calls are paced by embedding_rpm and retried up to
embedding_retries times when rate limited. Other errors stop the run and
leave any existing vector file unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Get()
			if sourceDir == "" {
				sourceDir = a.ws.SourceDir()
			}
			if outPath == "" {
				if err := a.ws.EnsureVectorDir(); err != nil {
					return err
				}
				outPath = a.ws.VectorPath()
			} else if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("failed to create vector directory: %w", err)
			}

			vectorizer := rag.NewVectorizer(rag.VectorizerConfig{
				Embedder: a.llm(),
				Splitter: rag.NewHeaderSplitter(cfg.RAG.HeaderLevels),
				Model:    cfg.EmbeddingModel,
				Limiter:  providers.NewRateLimiter(cfg.EmbeddingRPM),
				Attempts: cfg.EmbeddingRetries,
				OnSection: func(n int, s rag.Section) {
					a.out.Line("Got embedding %d", n)
					a.out.Line("File: %s", s.Page)
					a.out.Line("Section: %s", s.Section)
					a.out.Line("Vector: %s\n", rag.AbbreviateVector(s.Embedding, 3))
				},
				Logger: a.logger,
			})

			n, err := vectorizer.VectorizeFile(cmd.Context(), sourceDir, outPath)
			if err != nil {
				return err
			}
			a.out.Line("Wrote %d sections to %s", n, outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&sourceDir, "source", "", "directory of HTML pages (default: 04_rag/data/source)")
	cmd.Flags().StringVar(&outPath, "out", "", "vector file to write (default: 04_rag/data/vectors/ka-pow_vectors.csv)")
	return cmd
}

// ragFlags are shared by "rag prompt" and "rag ask".
type ragFlags struct {
	vectors string
	topK    int
}

func (f *ragFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.vectors, "vectors", "", "vector file (default: 04_rag/data/vectors/ka-pow_vectors.csv)")
	cmd.Flags().IntVarP(&f.topK, "top-k", "k", 0, "number of sections to include (default: rag.top_k)")
}

func (a *app) loadSections(f *ragFlags) ([]rag.Section, error) {
	path := f.vectors
	if path == "" {
		path = a.ws.VectorPath()
	}
	sections, err := rag.LoadVectors(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded vectors", "path", path, "sections", len(sections))
	return sections, nil
}

// answerPrompt retrieves the sections closest to question and renders the
// user prompt around them.
func (a *app) answerPrompt(ctx context.Context, sections []rag.Section, f *ragFlags, question string) (string, []rag.Section, error) {
	cfg := a.cfg.Get()
	k := f.topK
	if k <= 0 {
		k = cfg.RAG.TopK
	}

	retriever := rag.NewRetriever(a.llm(), cfg.EmbeddingModel, sections, a.logger)
	if k > retriever.Len() {
		a.logger.Debug("top_k exceeds section count", "top_k", k, "sections", retriever.Len())
	}
	best, err := retriever.Retrieve(ctx, question, k)
	if err != nil {
		return "", nil, err
	}

	user, err := a.render(ragprompt.UserPromptKey, ragprompt.Values(rag.FormatSections(best), question))
	if err != nil {
		return "", nil, err
	}
	return user, best, nil
}

func (a *app) printMatches(best []rag.Section) {
	a.out.Line(rule)
	for i, s := range best {
		a.out.Line("#%d match: Similarity: %.4f", i+1, s.Similarity)
		a.out.Line("Page: %s", s.Page)
		a.out.Line("Section: %s", s.Section)
		a.out.Section("Content", s.Content)
	}
	a.out.Line(rule)
}

func newRAGPromptCmd(a *app) *cobra.Command {
	var flags ragFlags
	cmd := &cobra.Command{
		Use:   "prompt [question...]",
		Short: "Print the answer prompt built for a question",
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := a.loadSections(&flags)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				a.out.Line("Enter a question about Ka-Pow! Comics Cafe")
				a.out.Line("and we'll generate a prompt that includes relevant information.\n")
			}
			question, err := a.readInput(args, "Question: ")
			if err != nil {
				return err
			}

			user, best, err := a.answerPrompt(cmd.Context(), sections, &flags, question)
			if err != nil {
				return err
			}
			a.printMatches(best)
			a.out.Line("Here's the prompt we'll send:")
			a.out.Line(rule)
			a.out.Line("%s", strings.TrimRight(user, "\n"))
			a.out.Line(rule)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newRAGAskCmd(a *app) *cobra.Command {
	var (
		flags       ragFlags
		interactive bool
		watch       bool
		showPrompt  bool
	)
	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Answer a question about the website from its closest sections",
		Long: `Retrieve the sections closest to the question, send them with the question
and the website Q&A system prompt, and print the answer.

With --interactive, questions are read from stdin until an empty line or
end of input; a failed question is reported and the loop continues. --watch
reloads the config file between questions when it changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := a.loadSections(&flags)
			if err != nil {
				return err
			}
			if watch {
				a.cfg.WatchConfig()
			}

			ask := func(question string) error {
				system, err := a.promptText(ragprompt.SystemPromptKey)
				if err != nil {
					return err
				}
				user, best, err := a.answerPrompt(cmd.Context(), sections, &flags, question)
				if err != nil {
					return err
				}
				if showPrompt {
					a.printMatches(best)
					a.out.Section("User prompt", user)
				}
				res, err := a.chat(cmd.Context(), providers.SystemMessage(system), providers.UserMessage(user))
				if err != nil {
					return err
				}
				a.out.Section("Response message content", res.Content)
				return nil
			}

			if !interactive {
				if len(args) == 0 {
					a.out.Line("Enter a question about Ka-Pow! Comics Cafe")
					a.out.Line("and we'll send a prompt that includes relevant information.\n")
				}
				question, err := a.readInput(args, "Question: ")
				if err != nil {
					return err
				}
				return ask(question)
			}

			a.out.Line("Ask questions about Ka-Pow! Comics Cafe. An empty line exits.\n")
			for {
				question, err := a.in.Ask("Question: ")
				if errors.Is(err, console.ErrNoInput) || (err == nil && question == "") {
					return nil
				}
				if err != nil {
					return err
				}
				if err := ask(question); err != nil {
					if cmd.Context().Err() != nil {
						return err
					}
					reportError(a.stderr, err)
				}
			}
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "keep asking questions until an empty line")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the config file when it changes")
	cmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "print the matched sections and the user prompt")
	return cmd
}
