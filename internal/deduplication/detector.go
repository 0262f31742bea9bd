package deduplication

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/steveyegge/taskcraft/internal/similarity"
	"github.com/steveyegge/taskcraft/internal/synonyms"
	"github.com/steveyegge/taskcraft/internal/types"
)

// Detector implements Deduplicator with edit-distance similarity and a synonym table
type Detector struct {
	config   Config
	synonyms *synonyms.Table
	cache    *lru.Cache[pairKey, float64]
	logger   *zap.Logger
}

// Compile-time check that Detector implements Deduplicator
var _ Deduplicator = (*Detector)(nil)

type pairKey struct {
	a, b string
}

// NewDetector creates a detector.
//
// A nil table disables the synonym rule; a nil logger discards log output.
// Returns an error if config validation fails.
func NewDetector(config Config, table *synonyms.Table, logger *zap.Logger) (*Detector, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Detector{
		config:   config,
		synonyms: table,
		logger:   logger,
	}

	if config.CacheSize > 0 {
		cache, err := lru.New[pairKey, float64](config.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create similarity cache: %w", err)
		}
		d.cache = cache
	}

	return d, nil
}

// Config returns the detector's configuration
func (d *Detector) Config() Config {
	return d.config
}

// FindSimilar returns the first task, then deferred item, that matches newText
// under the task-scope rule, or nil.
func (d *Detector) FindSimilar(newText string, tasks []*types.Task, deferred []*types.DeferredItem) *Match {
	normalizedNew := normalize(newText)

	pos := 0
	for _, task := range tasks {
		if m := d.check(normalizedNew, task.Text, d.config.TaskThreshold, d.config.UseSynonyms); m != nil {
			m.Kind, m.Task, m.Position = KindTask, task, pos
			d.logMatch(newText, m)
			return m
		}
		pos++
	}
	for _, item := range deferred {
		if m := d.check(normalizedNew, item.Text, d.config.TaskThreshold, d.config.UseSynonyms); m != nil {
			m.Kind, m.Deferred, m.Position = KindDeferred, item, pos
			d.logMatch(newText, m)
			return m
		}
		pos++
	}

	d.logger.Debug("no similar entry",
		zap.String("text", newText),
		zap.Int("compared", pos))
	return nil
}

// FindSimilarDeferred returns the first deferred item whose similarity to
// newText exceeds DeferredThreshold, or nil. Synonyms are not consulted.
func (d *Detector) FindSimilarDeferred(newText string, deferred []*types.DeferredItem) *Match {
	normalizedNew := normalize(newText)

	for i, item := range deferred {
		if m := d.check(normalizedNew, item.Text, d.config.DeferredThreshold, false); m != nil {
			m.Kind, m.Deferred, m.Position = KindDeferred, item, i
			d.logMatch(newText, m)
			return m
		}
	}
	return nil
}

// check compares one candidate. Similarity is tested first, then synonyms.
func (d *Detector) check(normalizedNew, candidateText string, threshold float64, useSynonyms bool) *Match {
	normalizedExisting := normalize(candidateText)

	score := d.ratio(normalizedNew, normalizedExisting)
	if score > threshold {
		return &Match{Similarity: score}
	}

	if useSynonyms && d.synonyms != nil {
		if keyword, ok := d.synonyms.Concept(normalizedNew, normalizedExisting); ok {
			return &Match{Similarity: score, Concept: keyword}
		}
	}

	return nil
}

func (d *Detector) ratio(a, b string) float64 {
	if d.cache == nil {
		return similarity.Ratio(a, b)
	}

	// Ratio is symmetric, so one entry serves both orders
	key := pairKey{a, b}
	if b < a {
		key = pairKey{b, a}
	}
	if score, ok := d.cache.Get(key); ok {
		return score
	}
	score := similarity.Ratio(a, b)
	d.cache.Add(key, score)
	return score
}

func (d *Detector) logMatch(newText string, m *Match) {
	d.logger.Debug("similar entry found",
		zap.String("text", newText),
		zap.String("kind", string(m.Kind)),
		zap.String("match_id", m.ID()),
		zap.String("match_text", m.Text()),
		zap.Float64("similarity", m.Similarity),
		zap.String("concept", m.Concept))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
