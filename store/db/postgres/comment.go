package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/brandlens/brandlens/store"
)

func (d *DB) CreateComment(ctx context.Context, create *store.Comment) (*store.Comment, error) {
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}

	stmt := `
		INSERT INTO comment (uid, brand_id, text, sentiment, created_ts)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := d.db.QueryRowContext(ctx, stmt,
		create.UID,
		create.BrandID,
		create.Text,
		create.Sentiment,
		create.CreatedTs,
	).Scan(&create.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create comment")
	}

	return create, nil
}

func (d *DB) ListComments(ctx context.Context, find *store.FindComment) ([]*store.Comment, error) {
	where, args := []string{"TRUE"}, []any{}

	if find.ID != nil {
		where, args = append(where, fmt.Sprintf("id = $%d", len(args)+1)), append(args, *find.ID)
	}
	if find.UID != nil {
		where, args = append(where, fmt.Sprintf("uid = $%d", len(args)+1)), append(args, *find.UID)
	}
	if find.BrandID != nil {
		where, args = append(where, fmt.Sprintf("brand_id = $%d", len(args)+1)), append(args, *find.BrandID)
	}

	query := `
		SELECT id, uid, brand_id, text, sentiment, created_ts
		FROM comment
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts ASC, id ASC
	`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}
	defer rows.Close()

	list := []*store.Comment{}
	for rows.Next() {
		var comment store.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.UID,
			&comment.BrandID,
			&comment.Text,
			&comment.Sentiment,
			&comment.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan comment")
		}
		list = append(list, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) UpdateCommentSentiment(ctx context.Context, update *store.UpdateCommentSentiment) error {
	stmt := `UPDATE comment SET sentiment = $1 WHERE id = $2`
	if _, err := d.db.ExecContext(ctx, stmt, update.Sentiment, update.ID); err != nil {
		return errors.Wrap(err, "failed to update comment sentiment")
	}
	return nil
}

func (d *DB) DeleteComment(ctx context.Context, delete *store.DeleteComment) error {
	stmt := `DELETE FROM comment WHERE uid = $1`
	result, err := d.db.ExecContext(ctx, stmt, delete.UID)
	if err != nil {
		return errors.Wrap(err, "failed to delete comment")
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.Errorf("comment %s not found", delete.UID)
	}
	return nil
}
