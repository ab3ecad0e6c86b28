package rag

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/jackzampolin/promptlab/internal/providers"
)

// VectorizerConfig configures a Vectorizer.
type VectorizerConfig struct {
	Embedder providers.Embedder
	Splitter *HeaderSplitter
	Model    string

	// Limiter paces embedding calls. Nil means no pacing.
	Limiter *providers.RateLimiter

	// Attempts is the number of tries per section when the endpoint
	// rate limits. Other errors are never retried.
	Attempts uint

	// OnSection is called after each section is embedded.
	OnSection func(n int, s Section)

	Logger *slog.Logger
}

// Vectorizer splits pages and embeds every section.
type Vectorizer struct {
	cfg VectorizerConfig
}

// NewVectorizer creates a vectorizer.
func NewVectorizer(cfg VectorizerConfig) *Vectorizer {
	if cfg.Splitter == nil {
		cfg.Splitter = NewHeaderSplitter(DefaultHeaderLevels)
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Vectorizer{cfg: cfg}
}

// VectorizeDir embeds every *.html page in dir, in name order, writing each
// section to w as soon as it is embedded. It returns the section count.
func (v *Vectorizer) VectorizeDir(ctx context.Context, dir string, w *VectorWriter) (int, error) {
	pages, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return 0, fmt.Errorf("failed to list pages: %w", err)
	}
	if len(pages) == 0 {
		return 0, &FileError{Op: "list pages in", Path: dir, Err: ErrNoPages}
	}
	sort.Strings(pages)

	n := 0
	for _, page := range pages {
		sections, err := v.cfg.Splitter.SplitFile(page)
		if err != nil {
			return n, err
		}
		v.cfg.Logger.Info("split page", "page", filepath.Base(page), "sections", len(sections))

		for _, s := range sections {
			vec, err := v.embed(ctx, s.EmbeddingText())
			if err != nil {
				return n, fmt.Errorf("failed to embed %s %q: %w", s.Page, s.Section, err)
			}
			s.Embedding = vec
			if err := w.Write(s); err != nil {
				return n, fmt.Errorf("failed to write vector: %w", err)
			}
			n++
			if v.cfg.OnSection != nil {
				v.cfg.OnSection(n, s)
			}
		}
	}
	return n, w.Close()
}

// VectorizeFile runs VectorizeDir into a temporary file next to path and
// renames it over path only when every section was written. A failed run
// leaves any existing file at path untouched.
func (v *Vectorizer) VectorizeFile(ctx context.Context, dir, path string) (int, error) {
	var n int
	err := replaceVectorFile(path, func(vw *VectorWriter) error {
		var err error
		n, err = v.VectorizeDir(ctx, dir, vw)
		return err
	})
	return n, err
}

func (v *Vectorizer) embed(ctx context.Context, text string) ([]float64, error) {
	var vec []float64
	err := retry.Do(
		func() error {
			if v.cfg.Limiter != nil {
				if err := v.cfg.Limiter.Wait(ctx); err != nil {
					return retry.Unrecoverable(err)
				}
			}
			res, err := v.cfg.Embedder.Embed(ctx, &providers.EmbeddingRequest{Input: text, Model: v.cfg.Model})
			if err != nil {
				if rle, ok := providers.IsRateLimitError(err); ok && v.cfg.Limiter != nil {
					v.cfg.Limiter.Record429(rle.RetryAfter)
				}
				return err
			}
			vec = res.Vector
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(v.cfg.Attempts),
		retry.RetryIf(func(err error) bool {
			_, ok := providers.IsRateLimitError(err)
			return ok
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			if rle, ok := providers.IsRateLimitError(err); ok && rle.RetryAfter > 0 {
				return rle.RetryAfter
			}
			return retry.BackOffDelay(n, err, config)
		}),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			v.cfg.Logger.Warn("embedding rate limited, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return vec, nil
}
