package usecase

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pantryrank/backend/internal/domain"
)

// DefaultFuzzyThreshold is the minimum similarity accepted when none is configured
const DefaultFuzzyThreshold = 80

// MatchConfig holds configuration for the matching service.
// The zero FuzzyThreshold is a legitimate "accept anything" setting, so start from
// DefaultMatchConfig when only some fields need overriding.
type MatchConfig struct {
	FuzzyThreshold     int          // 0-100; out-of-range values fall back to DefaultFuzzyThreshold
	Scorer             ScoreFunc    // nil means Ratio
	Synonyms           SynonymTable // nil means DefaultSynonyms
	EnableDebugLogging bool
	Logger             *zap.Logger
}

// DefaultMatchConfig returns the production matching configuration
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		FuzzyThreshold: DefaultFuzzyThreshold,
		Scorer:         Ratio,
	}
}

// MatchingService finds the inventory item that best matches a recipe ingredient.
// It holds only immutable configuration and is safe for concurrent use.
type MatchingService struct {
	threshold          float64
	scorer             ScoreFunc
	expander           *VariationExpander
	normalizer         *Normalizer
	enableDebugLogging bool
	logger             *zap.Logger
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	threshold := config.FuzzyThreshold
	if threshold < 0 || threshold > 100 {
		logger.Warn("fuzzy threshold out of range, using default",
			zap.Int("configured", threshold),
			zap.Int("default", DefaultFuzzyThreshold))
		threshold = DefaultFuzzyThreshold
	}

	scorer := config.Scorer
	if scorer == nil {
		scorer = Ratio
	}

	normalizer := NewNormalizer()
	return &MatchingService{
		threshold:          float64(threshold),
		scorer:             scorer,
		expander:           NewVariationExpander(normalizer, config.Synonyms),
		normalizer:         normalizer,
		enableDebugLogging: config.EnableDebugLogging,
		logger:             logger,
	}
}

// Threshold returns the effective fuzzy threshold
func (s *MatchingService) Threshold() int {
	return int(s.threshold)
}

// Variations returns the candidate strings tried for an ingredient
func (s *MatchingService) Variations(ingredient string) []string {
	return s.expander.Expand(ingredient)
}

// Normalize exposes the matcher's normalizer
func (s *MatchingService) Normalize(text string) string {
	return s.normalizer.Normalize(text)
}

type poolEntry struct {
	item       domain.PoolItem
	normalized string
}

// PreparedPool is a combined inventory pool with every name already normalized.
// It is read-only once built and may be shared between goroutines.
type PreparedPool struct {
	entries []poolEntry
}

// Len returns the number of matchable entries
func (p *PreparedPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// PreparePool normalizes a pool once so it can be matched against many ingredients.
// Records with an unknown tier are skipped with a warning; records whose name is blank
// or normalizes to nothing are dropped silently since they can never match.
func (s *MatchingService) PreparePool(pool []domain.PoolItem) *PreparedPool {
	prepared := &PreparedPool{entries: make([]poolEntry, 0, len(pool))}
	for i, item := range pool {
		if !item.Tier.Owned() {
			s.logger.Warn("skipping pool record with invalid tier",
				zap.Int("index", i),
				zap.String("item", item.Name),
				zap.String("tier", string(item.Tier)))
			continue
		}
		if item.Blank() {
			continue
		}
		normalized := s.normalizer.Normalize(item.Name)
		if normalized == "" {
			continue
		}
		prepared.entries = append(prepared.entries, poolEntry{item: item, normalized: normalized})
	}
	return prepared
}

// FindBestMatch finds the best matching pool item for an ingredient.
// Returns nil when the text or pool is empty or no pair reaches the threshold.
func (s *MatchingService) FindBestMatch(text string, pool []domain.PoolItem) *domain.MatchResult {
	if strings.TrimSpace(text) == "" || len(pool) == 0 {
		return nil
	}
	return s.MatchPrepared(text, s.PreparePool(pool))
}

// MatchPrepared is FindBestMatch against an already prepared pool.
//
// Variations are scanned in the outer loop and pool entries in the inner one. A pair
// wins only if it beats the best score so far strictly, so the first pair to reach the
// maximum keeps the match.
func (s *MatchingService) MatchPrepared(text string, pool *PreparedPool) *domain.MatchResult {
	if strings.TrimSpace(text) == "" || pool.Len() == 0 {
		return nil
	}

	variations := s.expander.Expand(text)
	if s.enableDebugLogging {
		s.logger.Debug("matching ingredient",
			zap.String("ingredient", text),
			zap.Strings("variations", variations))
	}

	var best *domain.MatchResult
	bestScore := 0.0

	for _, variation := range variations {
		for i := range pool.entries {
			entry := &pool.entries[i]

			score, ok := s.score(variation, entry.normalized)
			if !ok {
				continue
			}

			if s.enableDebugLogging {
				s.logger.Debug("scored pair",
					zap.String("variation", variation),
					zap.String("candidate", entry.normalized),
					zap.Float64("score", score))
			}

			if score > bestScore && score >= s.threshold {
				item := entry.item.InventoryItem
				best = &domain.MatchResult{
					Item:        &item,
					MatchedName: entry.normalized,
					Variation:   variation,
					Score:       score,
					Tier:        entry.item.Tier,
				}
				bestScore = score
			}
		}
	}

	// Threshold 0 treats the starting best score as -inf: some pair always wins, even at
	// score 0, so the first pool entry stands in when nothing scored above zero.
	if best == nil && s.threshold == 0 {
		entry := pool.entries[0]
		item := entry.item.InventoryItem
		best = &domain.MatchResult{
			Item:        &item,
			MatchedName: entry.normalized,
			Variation:   variations[0],
			Score:       0,
			Tier:        entry.item.Tier,
		}
	}

	if s.enableDebugLogging {
		if best != nil {
			s.logger.Debug("best match",
				zap.String("ingredient", text),
				zap.String("item", best.Item.Name),
				zap.Float64("score", best.Score),
				zap.String("tier", string(best.Tier)))
		} else {
			s.logger.Debug("no match", zap.String("ingredient", text))
		}
	}

	return best
}

// score runs the configured scorer, rejecting panics and values outside [0,100]
func (s *MatchingService) score(a, b string) (score float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("similarity scorer panicked",
				zap.String("a", a),
				zap.String("b", b),
				zap.String("panic", fmt.Sprint(r)))
			score, ok = 0, false
		}
	}()

	score = s.scorer(a, b)
	if !validScore(score) {
		s.logger.Warn("discarding malformed similarity score",
			zap.String("a", a),
			zap.String("b", b),
			zap.Float64("score", score))
		return 0, false
	}
	return score, true
}
