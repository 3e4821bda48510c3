package sqlite

import (
	"context"

	"github.com/pkg/errors"

	"github.com/brandlens/brandlens/store"
)

// ReplaceThemeGraph clears and re-inserts a brand's graph in one
// transaction, so a failed run never leaves a partial graph behind.
func (d *DB) ReplaceThemeGraph(ctx context.Context, replace *store.ReplaceThemeGraph) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM theme_link WHERE brand_id = ?`, replace.BrandID); err != nil {
		return errors.Wrap(err, "failed to clear theme links")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM theme_node WHERE brand_id = ?`, replace.BrandID); err != nil {
		return errors.Wrap(err, "failed to clear theme nodes")
	}

	for _, node := range replace.Nodes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO theme_node (brand_id, keyword, weight, sentiment) VALUES (?, ?, ?, ?)`,
			replace.BrandID, node.Keyword, node.Weight, node.Sentiment,
		); err != nil {
			return errors.Wrap(err, "failed to insert theme node")
		}
	}

	for _, link := range replace.Links {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO theme_link (brand_id, source, target, value) VALUES (?, ?, ?, ?)`,
			replace.BrandID, link.Source, link.Target, link.Value,
		); err != nil {
			return errors.Wrap(err, "failed to insert theme link")
		}
	}

	return tx.Commit()
}

func (d *DB) ListThemeNodes(ctx context.Context, find *store.FindThemeGraph) ([]*store.ThemeNode, error) {
	query := `
		SELECT id, brand_id, keyword, weight, sentiment
		FROM theme_node
		WHERE brand_id = ?
		ORDER BY id ASC
	`

	rows, err := d.db.QueryContext(ctx, query, find.BrandID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list theme nodes")
	}
	defer rows.Close()

	list := []*store.ThemeNode{}
	for rows.Next() {
		var node store.ThemeNode
		if err := rows.Scan(
			&node.ID,
			&node.BrandID,
			&node.Keyword,
			&node.Weight,
			&node.Sentiment,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan theme node")
		}
		list = append(list, &node)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) ListThemeLinks(ctx context.Context, find *store.FindThemeGraph) ([]*store.ThemeLink, error) {
	query := `
		SELECT id, brand_id, source, target, value
		FROM theme_link
		WHERE brand_id = ?
		ORDER BY id ASC
	`

	rows, err := d.db.QueryContext(ctx, query, find.BrandID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list theme links")
	}
	defer rows.Close()

	list := []*store.ThemeLink{}
	for rows.Next() {
		var link store.ThemeLink
		if err := rows.Scan(
			&link.ID,
			&link.BrandID,
			&link.Source,
			&link.Target,
			&link.Value,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan theme link")
		}
		list = append(list, &link)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
