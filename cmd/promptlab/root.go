package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptlab/internal/config"
	"github.com/jackzampolin/promptlab/internal/console"
	"github.com/jackzampolin/promptlab/internal/prompts"
	"github.com/jackzampolin/promptlab/internal/prompts/claim"
	"github.com/jackzampolin/promptlab/internal/prompts/joke"
	ragprompt "github.com/jackzampolin/promptlab/internal/prompts/rag"
	"github.com/jackzampolin/promptlab/internal/prompts/tone"
	"github.com/jackzampolin/promptlab/internal/providers"
	"github.com/jackzampolin/promptlab/internal/workspace"
	"github.com/jackzampolin/promptlab/version"
)

// annotationSkipConfig marks commands that run without loading config.
const annotationSkipConfig = "promptlab/skip-config"

// modelClient sends chat and embedding requests.
type modelClient interface {
	providers.LLMClient
	providers.Embedder
}

// app holds the state shared by all commands of one invocation.
type app struct {
	// Persistent flags
	cfgFile      string
	workspaceDir string
	outputFormat string
	logLevel     string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	logger   *slog.Logger
	ws       *workspace.Dir
	cfg      *config.Manager
	out      *console.Printer
	in       *console.Prompter
	resolver *prompts.Resolver

	// newClient builds the model client from the current config.
	newClient func(cfg *config.Config, logger *slog.Logger) modelClient

	mu     sync.Mutex
	client modelClient
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		logger:    slog.Default(),
		newClient: newOpenAIClient,
	}
}

func newOpenAIClient(cfg *config.Config, logger *slog.Logger) modelClient {
	return providers.NewOpenAIClient(providers.OpenAIConfig{
		APIKey:         cfg.ResolveAPIKey(),
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.RequestTimeout(),
		BaseURL:        cfg.BaseURL,
		Logger:         logger,
	})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "promptlab",
		Short: "Prompt engineering lessons against a hosted LLM",
		Long: `promptlab walks through prompting patterns one lesson at a time:

  joke         a plain prompt, optionally with a system message
  tone         a prompt template with delimiters
  extract      extracting structured JSON from a transcript
  embed        embeddings and vector similarity
  rag          splitting, vectorizing and retrieval-augmented answers

Lesson files live in the workspace (default: current directory). Put
OPENAI_API_KEY in <workspace>/.env.`,
		Version:       version.GitRelease,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(
		&a.cfgFile, "config", "", "config file (default: <workspace>/config.yaml or config.json)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&a.workspaceDir, "workspace", "w", "", "lesson workspace directory (default: current directory)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&a.outputFormat, "output", "o", "yaml", "output format for structured values: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error",
	)

	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.AddCommand(
		newVersionCmd(a),
		newConfigCmd(a),
		newPromptsCmd(a),
		newJokeCmd(a),
		newToneCmd(a),
		newExtractCmd(a),
		newEmbedCmd(a),
		newSimilarityCmd(a),
		newRAGCmd(a),
	)
	return rootCmd
}

// setup runs before every command.
func (a *app) setup(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(a.logLevel))); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	format, err := console.ParseFormat(a.outputFormat)
	if err != nil {
		return err
	}
	a.out = console.NewPrinter(a.stdout, format)
	a.in = console.NewPrompter(a.stdin, a.stdout)

	ws, err := workspace.New(a.workspaceDir)
	if err != nil {
		return err
	}
	a.ws = ws
	if !ws.Exists() {
		a.logger.Warn("workspace directory does not exist; lesson files will not be found", "path", ws.Path())
	}

	a.resolver = prompts.NewResolver(ws.Path(), a.logger)
	joke.RegisterPrompts(a.resolver)
	tone.RegisterPrompts(a.resolver)
	claim.RegisterPrompts(a.resolver)
	ragprompt.RegisterPrompts(a.resolver)

	if cmd.Annotations[annotationSkipConfig] != "" {
		return nil
	}

	loaded, err := config.LoadDotEnv(ws.EnvPath())
	if err != nil {
		return err
	}
	if loaded {
		a.logger.Debug("loaded environment file", "path", ws.EnvPath())
	}

	mgr, err := config.NewManager(a.cfgFile, ws.Path(), a.logger)
	if err != nil {
		return err
	}
	a.cfg = mgr
	a.cfg.OnChange(func(*config.Config) { a.resetClient() })
	a.logger.Debug("config loaded", "file", mgr.ConfigFile(), "chat_model", mgr.Get().ChatModel)
	return nil
}

// llm returns the model client, building it on first use.
func (a *app) llm() modelClient {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client == nil {
		a.client = a.newClient(a.cfg.Get(), a.logger)
	}
	return a.client
}

// resetClient drops the client so the next request uses reloaded config.
func (a *app) resetClient() {
	a.mu.Lock()
	a.client = nil
	a.mu.Unlock()
}

func (a *app) builder() *prompts.Builder {
	opts := []prompts.Option{prompts.WithLogger(a.logger)}
	if a.cfg.Get().Prompts.StrictDelimiters {
		opts = append(opts, prompts.WithStrictDelimiters())
	}
	return prompts.NewBuilder(opts...)
}

// promptText returns the resolved text of a prompt that has no placeholders.
func (a *app) promptText(key string) (string, error) {
	p, err := a.resolver.Resolve(key)
	if err != nil {
		return "", err
	}
	return p.Text, nil
}

// render resolves a prompt template and substitutes values into it.
func (a *app) render(key string, values map[string]string) (string, error) {
	p, err := a.resolver.Resolve(key)
	if err != nil {
		return "", err
	}
	return a.builder().Build(p.Template(), values)
}

// chat sends one completion request with the configured parameters.
func (a *app) chat(ctx context.Context, msgs ...providers.Message) (*providers.ChatResult, error) {
	conv, err := providers.NewConversation(msgs...)
	if err != nil {
		return nil, err
	}
	cfg := a.cfg.Get()
	return a.llm().Chat(ctx, &providers.ChatRequest{
		Messages:    conv,
		Model:       cfg.ChatModel,
		Temperature: providers.Float(cfg.Temperature),
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.RequestTimeout(),
	})
}

// embed returns the embedding of one text.
func (a *app) embed(ctx context.Context, text string) (*providers.EmbeddingResult, error) {
	cfg := a.cfg.Get()
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout())
	defer cancel()
	return a.llm().Embed(ctx, &providers.EmbeddingRequest{Input: text, Model: cfg.EmbeddingModel})
}

// responseObject returns the endpoint's response body for display, or the
// result itself when the body isn't available.
func responseObject(res *providers.ChatResult) any {
	if len(res.Raw) > 0 {
		var body any
		if err := json.Unmarshal(res.Raw, &body); err == nil {
			return body
		}
	}
	return res
}

// readInput returns the joined args, or asks for a line on stdin.
func (a *app) readInput(args []string, question string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	answer, err := a.in.Ask(question)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", fmt.Errorf("no input given")
	}
	return answer, nil
}
