package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/brandlens/brandlens/store"
)

// ReplaceKeywords swaps a brand's canonical keyword set in one transaction.
func (d *DB) ReplaceKeywords(ctx context.Context, brandID int32, phrases []string) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM keyword WHERE brand_id = $1`, brandID); err != nil {
		return errors.Wrap(err, "failed to clear keywords")
	}

	now := time.Now().Unix()
	for _, phrase := range phrases {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO keyword (brand_id, phrase, created_ts) VALUES ($1, $2, $3)`,
			brandID, phrase, now,
		); err != nil {
			return errors.Wrap(err, "failed to insert keyword")
		}
	}

	return tx.Commit()
}

func (d *DB) ListKeywords(ctx context.Context, find *store.FindKeyword) ([]*store.Keyword, error) {
	where, args := []string{"TRUE"}, []any{}

	if find.BrandID != nil {
		where, args = append(where, fmt.Sprintf("brand_id = $%d", len(args)+1)), append(args, *find.BrandID)
	}

	query := `
		SELECT id, brand_id, phrase, created_ts
		FROM keyword
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id ASC
	`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list keywords")
	}
	defer rows.Close()

	list := []*store.Keyword{}
	for rows.Next() {
		var keyword store.Keyword
		if err := rows.Scan(
			&keyword.ID,
			&keyword.BrandID,
			&keyword.Phrase,
			&keyword.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan keyword")
		}
		list = append(list, &keyword)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
