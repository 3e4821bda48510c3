package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate applies the schema.
	Migrate(ctx context.Context) error

	// Comment model related methods.
	CreateComment(ctx context.Context, create *Comment) (*Comment, error)
	ListComments(ctx context.Context, find *FindComment) ([]*Comment, error)
	UpdateCommentSentiment(ctx context.Context, update *UpdateCommentSentiment) error
	DeleteComment(ctx context.Context, delete *DeleteComment) error

	// Keyword model related methods.
	ReplaceKeywords(ctx context.Context, brandID int32, phrases []string) error
	ListKeywords(ctx context.Context, find *FindKeyword) ([]*Keyword, error)

	// ThemeGraph model related methods.
	ReplaceThemeGraph(ctx context.Context, replace *ReplaceThemeGraph) error
	ListThemeNodes(ctx context.Context, find *FindThemeGraph) ([]*ThemeNode, error)
	ListThemeLinks(ctx context.Context, find *FindThemeGraph) ([]*ThemeLink, error)

	// KeywordEmbedding model related methods.
	UpsertKeywordEmbedding(ctx context.Context, upsert *KeywordEmbedding) (*KeywordEmbedding, error)
	ListKeywordEmbeddings(ctx context.Context, find *FindKeywordEmbedding) ([]*KeywordEmbedding, error)
}
