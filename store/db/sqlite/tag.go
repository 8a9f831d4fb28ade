package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/drillsrs/drill/store"
)

func (d *DB) CreateTag(ctx context.Context, create *store.Tag) (*store.Tag, error) {
	stmt := `INSERT INTO tag (deck_id, name, color) VALUES (` + placeholders(3) + `) RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, create.DeckID, create.Name, create.Color).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return create, nil
}

func (d *DB) ListTags(ctx context.Context, find *store.FindTag) ([]*store.Tag, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "tag.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.DeckID; v != nil {
		where, args = append(where, "tag.deck_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Name; v != nil {
		// Case-sensitive on purpose: it matches the UNIQUE(deck_id, name)
		// constraint, so a name identifies at most one tag.
		where, args = append(where, "tag.name = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, deck_id, name, color
		FROM tag
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY tag.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Tag, 0)
	for rows.Next() {
		var tag store.Tag
		if err := rows.Scan(&tag.ID, &tag.DeckID, &tag.Name, &tag.Color); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		list = append(list, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateTag(ctx context.Context, update *store.UpdateTag) error {
	set, args := []string{}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Color; v != nil {
		set, args = append(set, "color = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, update.ID)

	stmt := `UPDATE tag SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	return nil
}

func (d *DB) DeleteTag(ctx context.Context, delete *store.DeleteTag) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM card_tag WHERE tag_id = ?`, delete.ID); err != nil {
		return fmt.Errorf("failed to detach tag: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tag WHERE id = ?`, delete.ID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (d *DB) CountTagUsages(ctx context.Context, tagID int32) (int, error) {
	var count int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM card_tag WHERE tag_id = ?`, tagID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tag usages: %w", err)
	}
	return count, nil
}
