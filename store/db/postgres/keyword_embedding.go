package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/brandlens/brandlens/store"
)

func (d *DB) UpsertKeywordEmbedding(ctx context.Context, upsert *store.KeywordEmbedding) (*store.KeywordEmbedding, error) {
	if upsert.CreatedTs == 0 {
		upsert.CreatedTs = time.Now().Unix()
	}

	stmt := `
		INSERT INTO keyword_embedding (text_hash, model, embedding, created_ts)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (text_hash, model)
		DO UPDATE SET embedding = EXCLUDED.embedding
		RETURNING id, created_ts
	`
	err := d.db.QueryRowContext(ctx, stmt,
		upsert.TextHash,
		upsert.Model,
		pgvector.NewVector(upsert.Embedding),
		upsert.CreatedTs,
	).Scan(&upsert.ID, &upsert.CreatedTs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert keyword embedding")
	}

	return upsert, nil
}

func (d *DB) ListKeywordEmbeddings(ctx context.Context, find *store.FindKeywordEmbedding) ([]*store.KeywordEmbedding, error) {
	where, args := []string{"model = $1"}, []any{find.Model}

	if len(find.TextHashes) > 0 {
		placeholders := make([]string, len(find.TextHashes))
		for i, hash := range find.TextHashes {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
			args = append(args, hash)
		}
		where = append(where, "text_hash IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := `
		SELECT id, text_hash, model, embedding, created_ts
		FROM keyword_embedding
		WHERE ` + strings.Join(where, " AND ")

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list keyword embeddings")
	}
	defer rows.Close()

	list := []*store.KeywordEmbedding{}
	for rows.Next() {
		var embedding store.KeywordEmbedding
		var vec pgvector.Vector
		if err := rows.Scan(
			&embedding.ID,
			&embedding.TextHash,
			&embedding.Model,
			&vec,
			&embedding.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan keyword embedding")
		}
		embedding.Embedding = vec.Slice()
		list = append(list, &embedding)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
