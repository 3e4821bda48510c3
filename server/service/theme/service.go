// Package theme orchestrates the theme graph pipeline for a brand:
// sentiment backfill, keyword generation, deduplication, comment matching,
// aggregation, graph construction and connectivity augmentation.
package theme

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/brandlens/brandlens/plugin/ai"
	"github.com/brandlens/brandlens/plugin/ai/keywords"
	"github.com/brandlens/brandlens/plugin/ai/sentiment"
	"github.com/brandlens/brandlens/plugin/ai/themegraph"
	"github.com/brandlens/brandlens/store"
)

// ErrRunInProgress is returned when a regeneration is requested for a brand
// that already has one running.
var ErrRunInProgress = errors.New("theme graph run already in progress")

// classifyConcurrency bounds parallel sentiment calls per run.
const classifyConcurrency = 4

// Service runs and serves theme graphs.
type Service struct {
	store      *store.Store
	embedding  ai.EmbeddingService
	extractor  *keywords.Extractor
	classifier *sentiment.Classifier
	config     themegraph.Config

	mu      sync.Mutex
	running map[int32]bool
}

// NewService creates a theme Service. The embedding service is wrapped with
// the store-backed cache so repeated runs reuse keyword vectors.
func NewService(s *store.Store, embedding ai.EmbeddingService, llm ai.LLMService, model string, config themegraph.Config) *Service {
	cached := newCachedEmbeddingService(embedding, s, model)
	return &Service{
		store:      s,
		embedding:  cached,
		extractor:  keywords.NewExtractor(llm, config.MinKeywords, config.MaxKeywordAttempts),
		classifier: sentiment.NewClassifier(llm),
		config:     config,
		running:    make(map[int32]bool),
	}
}

// Graph returns the stored theme graph for a brand. A brand without a graph
// yields an empty graph, never nil slices.
func (s *Service) Graph(ctx context.Context, brandID int32) (*themegraph.ThemeGraph, error) {
	nodes, err := s.store.ListThemeNodes(ctx, &store.FindThemeGraph{BrandID: brandID})
	if err != nil {
		return nil, errors.Wrap(err, "list theme nodes")
	}
	links, err := s.store.ListThemeLinks(ctx, &store.FindThemeGraph{BrandID: brandID})
	if err != nil {
		return nil, errors.Wrap(err, "list theme links")
	}

	graph := &themegraph.ThemeGraph{
		Nodes: make([]themegraph.ThemeNode, 0, len(nodes)),
		Links: make([]themegraph.ThemeLink, 0, len(links)),
	}
	for _, node := range nodes {
		graph.Nodes = append(graph.Nodes, themegraph.ThemeNode{
			Keyword:   node.Keyword,
			Weight:    node.Weight,
			Sentiment: node.Sentiment,
		})
	}
	for _, link := range links {
		graph.Links = append(graph.Links, themegraph.ThemeLink{
			Source: link.Source,
			Target: link.Target,
			Value:  link.Value,
		})
	}
	return graph, nil
}

// Regenerate rebuilds the theme graph for a brand from its stored comments
// and replaces the persisted graph in one transaction. Only one run per
// brand may be active at a time.
func (s *Service) Regenerate(ctx context.Context, brandID int32) (*themegraph.ThemeGraph, error) {
	if !s.tryLock(brandID) {
		return nil, ErrRunInProgress
	}
	defer s.unlock(brandID)

	runID := uuid.NewString()
	started := time.Now()
	logger := slog.With("run_id", runID, "brand_id", brandID)
	logger.Info("theme graph run started")

	comments, err := s.store.ListComments(ctx, &store.FindComment{BrandID: &brandID})
	if err != nil {
		return nil, errors.Wrap(err, "list comments")
	}

	usable := make([]*store.Comment, 0, len(comments))
	for _, comment := range comments {
		if comment.Text == "" {
			logger.Warn("skipping comment with empty text", "comment_uid", comment.UID)
			continue
		}
		usable = append(usable, comment)
	}
	if len(usable) == 0 {
		return nil, errors.New("no comments to build a theme graph from")
	}

	if err := s.backfillSentiments(ctx, usable, logger); err != nil {
		return nil, err
	}

	texts := make([]string, len(usable))
	for i, comment := range usable {
		texts[i] = comment.Text
	}

	candidates, err := s.extractor.Extract(ctx, texts)
	if err != nil {
		return nil, errors.Wrap(err, "extract candidate keywords")
	}

	deduper := themegraph.NewDeduplicator(s.embedding, s.config.DedupeThreshold)
	canonical, err := deduper.Deduplicate(ctx, candidates)
	if err != nil {
		return nil, errors.Wrap(err, "deduplicate keywords")
	}
	logger.Info("keywords generated", "candidates", len(candidates), "canonical", len(canonical))

	if err := s.store.ReplaceKeywords(ctx, brandID, canonical); err != nil {
		return nil, errors.Wrap(err, "replace keywords")
	}

	matcher := themegraph.NewMatcher(s.embedding, s.config.MatchThreshold)
	matches, err := matcher.Match(ctx, texts, canonical)
	if err != nil {
		return nil, errors.Wrap(err, "match comments to keywords")
	}

	records := make([]themegraph.Record, len(usable))
	for i, comment := range usable {
		records[i] = themegraph.Record{
			Sentiment: comment.Sentiment,
			Keywords:  matches[i],
		}
	}

	graph := themegraph.BuildGraph(themegraph.Aggregate(records))

	augmenter := themegraph.NewAugmenter(s.embedding, s.config.MinLinks, s.config.SyntheticLinkValue)
	if err := augmenter.Augment(ctx, graph); err != nil {
		return nil, errors.Wrap(err, "augment graph connectivity")
	}

	if err := s.persistGraph(ctx, brandID, graph); err != nil {
		return nil, errors.Wrap(err, "persist theme graph")
	}

	logger.Info("theme graph run finished",
		"comments", len(usable),
		"nodes", len(graph.Nodes),
		"links", len(graph.Links),
		"duration", time.Since(started))
	return graph, nil
}

// backfillSentiments classifies comments without a stored sentiment and
// persists the labels. Classification never fails a run; the classifier
// falls back to neutral on error.
func (s *Service) backfillSentiments(ctx context.Context, comments []*store.Comment, logger *slog.Logger) error {
	sem := semaphore.NewWeighted(classifyConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	classified := 0
	for _, comment := range comments {
		if themegraph.IsKnownSentiment(comment.Sentiment) {
			continue
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		classified++
		wg.Add(1)
		go func(comment *store.Comment) {
			defer wg.Done()
			defer sem.Release(1)

			label := s.classifier.Classify(ctx, comment.Text)
			comment.Sentiment = label
			if err := s.store.UpdateCommentSentiment(ctx, &store.UpdateCommentSentiment{
				ID:        comment.ID,
				Sentiment: label,
			}); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = errors.Wrap(err, "persist comment sentiment")
				}
				mu.Unlock()
			}
		}(comment)
	}
	wg.Wait()

	if classified > 0 {
		logger.Info("sentiments backfilled", "count", classified)
	}
	return firstErr
}

func (s *Service) persistGraph(ctx context.Context, brandID int32, graph *themegraph.ThemeGraph) error {
	replace := &store.ReplaceThemeGraph{
		BrandID: brandID,
		Nodes:   make([]*store.ThemeNode, 0, len(graph.Nodes)),
		Links:   make([]*store.ThemeLink, 0, len(graph.Links)),
	}
	for _, node := range graph.Nodes {
		replace.Nodes = append(replace.Nodes, &store.ThemeNode{
			BrandID:   brandID,
			Keyword:   node.Keyword,
			Weight:    node.Weight,
			Sentiment: node.Sentiment,
		})
	}
	for _, link := range graph.Links {
		replace.Links = append(replace.Links, &store.ThemeLink{
			BrandID: brandID,
			Source:  link.Source,
			Target:  link.Target,
			Value:   link.Value,
		})
	}
	return s.store.ReplaceThemeGraph(ctx, replace)
}

func (s *Service) tryLock(brandID int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running[brandID] {
		return false
	}
	s.running[brandID] = true
	return true
}

func (s *Service) unlock(brandID int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, brandID)
}
