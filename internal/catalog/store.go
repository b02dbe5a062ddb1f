// =============================================================================
// DATANORM-AZ Processor - Catalog Store
// =============================================================================
//
// In-memory keyed store for the decoded catalog. The store is written only
// during ingestion and treated as immutable afterwards; the price resolver
// and the CLI only read it. There is deliberately no delete operation, the
// store lives for exactly one program run.
//
// Keys:
//   Article    : article number (last write fully replaces)
//   PriceStep  : (article number, step code) (last write replaces in place)
//
// Steps are kept in ingestion order per article; quantity ordering is a
// query-time concern of the resolver, not a storage invariant.
//
// =============================================================================

package catalog

import "github.com/akress/datanorm-az/internal/types"

// Store holds one Article per article number and the ordered step
// collections per article number. Step collections may exist for article
// numbers with no article record (orphan steps).
type Store struct {
	articles map[string]types.Article
	steps    map[string][]types.PriceStep

	// order preserves first-seen article numbers across both record kinds
	// so that batch queries iterate in a stable, reproducible order.
	order []string
	seen  map[string]struct{}
}

// NewStore returns an empty catalog store.
func NewStore() *Store {
	return &Store{
		articles: make(map[string]types.Article),
		steps:    make(map[string][]types.PriceStep),
		seen:     make(map[string]struct{}),
	}
}

// UpsertArticle inserts the article or fully replaces an existing one with
// the same article number. The last occurrence in the source wins, field by
// field, including fields the newer record leaves empty.
func (s *Store) UpsertArticle(article types.Article) {
	s.touch(article.ArticleNo)
	s.articles[article.ArticleNo] = article
}

// UpsertPriceStep inserts the step or replaces the existing step with the
// same (article number, step code) pair in place. Distinct step codes
// accumulate in ingestion order.
func (s *Store) UpsertPriceStep(step types.PriceStep) {
	s.touch(step.ArticleNo)
	existing := s.steps[step.ArticleNo]
	for i := range existing {
		if existing[i].StepCode == step.StepCode {
			existing[i] = step
			return
		}
	}
	s.steps[step.ArticleNo] = append(existing, step)
}

// GetArticle returns the article for the given number, if any.
func (s *Store) GetArticle(articleNo string) (types.Article, bool) {
	article, ok := s.articles[articleNo]
	return article, ok
}

// GetSteps returns the step collection for the given article number in
// ingestion order. The collection may be non-empty even when no article
// record exists for the number.
func (s *Store) GetSteps(articleNo string) []types.PriceStep {
	return s.steps[articleNo]
}

// Has reports whether anything at all is stored under the article number,
// either an article record or at least one price step.
func (s *Store) Has(articleNo string) bool {
	_, ok := s.seen[articleNo]
	return ok
}

// ArticleNos returns every known article number in first-seen order.
func (s *Store) ArticleNos() []string {
	nos := make([]string, len(s.order))
	copy(nos, s.order)
	return nos
}

// ArticleCount returns the number of stored article records.
func (s *Store) ArticleCount() int {
	return len(s.articles)
}

// StepCount returns the total number of stored price steps.
func (s *Store) StepCount() int {
	total := 0
	for _, steps := range s.steps {
		total += len(steps)
	}
	return total
}

func (s *Store) touch(articleNo string) {
	if _, ok := s.seen[articleNo]; ok {
		return
	}
	s.seen[articleNo] = struct{}{}
	s.order = append(s.order, articleNo)
}
