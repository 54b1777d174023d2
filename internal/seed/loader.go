package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/corvid-labs/ragdex/internal/domain"
	domdoc "github.com/corvid-labs/ragdex/internal/domain/document"
	"github.com/corvid-labs/ragdex/internal/domain/document/meta"
)

const sourceLabel = "ragdex sample dataset"

// wordsPerMinute approximates adult reading speed for the
// reading_time_minutes metadata field.
const wordsPerMinute = 200

// Repository is the storage contract for seeding.
type Repository interface {
	Put(ctx context.Context, doc *domdoc.Document) error
	Exists(ctx context.Context, id string) (bool, error)
}

// Embedder vectorizes the corpus in batches.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

// Summary reports what a seeding run did.
type Summary struct {
	Loaded     int
	Skipped    int
	ByCategory map[string]int
}

// Loader writes the sample corpus into the index.
type Loader struct {
	repo   Repository
	embed  Embedder
	logger *zap.Logger
	now    func() time.Time
}

// NewLoader creates a corpus loader.
func NewLoader(repo Repository, embed Embedder, logger *zap.Logger) *Loader {
	return &Loader{repo: repo, embed: embed, logger: logger, now: time.Now}
}

// Load embeds and stores every corpus document not already present.
// Documents that already exist are skipped, so reseeding is idempotent.
// The embedding call retries transient provider failures with backoff.
func (l *Loader) Load(ctx context.Context) (Summary, error) {
	summary := Summary{ByCategory: make(map[string]int)}

	corpus := Corpus()
	pending := make([]domdoc.Document, 0, len(corpus))

	for i, d := range corpus {
		exists, err := l.repo.Exists(ctx, d.ID)
		if err != nil {
			return Summary{}, fmt.Errorf("check %s: %w", d.ID, err)
		}
		if exists {
			summary.Skipped++
			continue
		}

		doc, err := domdoc.New(d.ID, d.Title, d.Content, d.Category, d.Tags, buildMetadata(i, d.Content))
		if err != nil {
			return Summary{}, fmt.Errorf("build %s: %w", d.ID, err)
		}
		pending = append(pending, doc)
	}

	if len(pending) == 0 {
		l.logger.Info("Corpus already seeded", zap.Int("skipped", summary.Skipped))
		return summary, nil
	}

	texts := make([]string, len(pending))
	for i := range pending {
		texts[i] = pending[i].EmbeddingText()
	}

	batch, err := l.embedWithRetry(ctx, texts)
	if err != nil {
		return Summary{}, fmt.Errorf("embed corpus: %w", err)
	}
	if len(batch.Embeddings) != len(pending) {
		return Summary{}, fmt.Errorf("embed corpus: got %d vectors for %d documents",
			len(batch.Embeddings), len(pending))
	}

	// Timestamps are staggered so tie-break ordering is deterministic
	// across a fresh seed.
	base := l.now().UTC().AddDate(-1, 0, 0)
	for i := range pending {
		createdAt := base.AddDate(0, 0, i*10)
		doc := pending[i].
			WithVector(batch.Embeddings[i]).
			WithTimestamps(createdAt, createdAt.AddDate(0, 0, 5))

		if err := l.repo.Put(ctx, &doc); err != nil {
			return Summary{}, fmt.Errorf("store %s: %w", doc.ID(), err)
		}

		summary.Loaded++
		summary.ByCategory[doc.Category()]++
	}

	l.logger.Info("Corpus seeded",
		zap.Int("loaded", summary.Loaded),
		zap.Int("skipped", summary.Skipped),
		zap.Int("total_tokens", batch.TotalTokens))

	return summary, nil
}

// embedWithRetry retries the batch call on transient provider failures.
// A dimension mismatch is a configuration error and never retried.
func (l *Loader) embedWithRetry(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	var result domain.BatchEmbeddingResult

	op := func() error {
		var err error
		result, err = l.embed.BatchEmbed(ctx, texts)
		if err == nil {
			return nil
		}
		if isPermanent(err) {
			return backoff.Permanent(err)
		}
		l.logger.Warn("Embedding batch failed, retrying", zap.Error(err))
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return domain.BatchEmbeddingResult{}, err
	}
	return result, nil
}

func isPermanent(err error) bool {
	return errors.Is(err, domain.ErrEmbeddingDimMismatch)
}

func buildMetadata(i int, content string) map[string]meta.Value {
	words := len(strings.Fields(content))
	readingTime := words / wordsPerMinute
	if readingTime < 1 {
		readingTime = 1
	}
	return map[string]meta.Value{
		"author":               meta.String(fmt.Sprintf("Author %d", (i%5)+1)),
		"source":               meta.String(sourceLabel),
		"language":             meta.String("en"),
		"word_count":           meta.Number(float64(words)),
		"reading_time_minutes": meta.Number(float64(readingTime)),
	}
}
