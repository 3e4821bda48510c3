package store

import (
	"context"

	"github.com/brandlens/brandlens/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) CreateComment(ctx context.Context, create *Comment) (*Comment, error) {
	return s.driver.CreateComment(ctx, create)
}

func (s *Store) ListComments(ctx context.Context, find *FindComment) ([]*Comment, error) {
	return s.driver.ListComments(ctx, find)
}

func (s *Store) UpdateCommentSentiment(ctx context.Context, update *UpdateCommentSentiment) error {
	return s.driver.UpdateCommentSentiment(ctx, update)
}

func (s *Store) DeleteComment(ctx context.Context, delete *DeleteComment) error {
	return s.driver.DeleteComment(ctx, delete)
}

func (s *Store) ReplaceKeywords(ctx context.Context, brandID int32, phrases []string) error {
	return s.driver.ReplaceKeywords(ctx, brandID, phrases)
}

func (s *Store) ListKeywords(ctx context.Context, find *FindKeyword) ([]*Keyword, error) {
	return s.driver.ListKeywords(ctx, find)
}

func (s *Store) ReplaceThemeGraph(ctx context.Context, replace *ReplaceThemeGraph) error {
	return s.driver.ReplaceThemeGraph(ctx, replace)
}

func (s *Store) ListThemeNodes(ctx context.Context, find *FindThemeGraph) ([]*ThemeNode, error) {
	return s.driver.ListThemeNodes(ctx, find)
}

func (s *Store) ListThemeLinks(ctx context.Context, find *FindThemeGraph) ([]*ThemeLink, error) {
	return s.driver.ListThemeLinks(ctx, find)
}

func (s *Store) UpsertKeywordEmbedding(ctx context.Context, upsert *KeywordEmbedding) (*KeywordEmbedding, error) {
	return s.driver.UpsertKeywordEmbedding(ctx, upsert)
}

func (s *Store) ListKeywordEmbeddings(ctx context.Context, find *FindKeywordEmbedding) ([]*KeywordEmbedding, error) {
	return s.driver.ListKeywordEmbeddings(ctx, find)
}
