package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/drillsrs/drill/store"
)

func (d *DB) CreateDeck(ctx context.Context, create *store.Deck) (*store.Deck, error) {
	stmt := `INSERT INTO deck (uid, name, description) VALUES (` + placeholders(3) + `) RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, create.UID, create.Name, create.Description).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create deck: %w", err)
	}
	return create, nil
}

func (d *DB) ListDecks(ctx context.Context, find *store.FindDeck) ([]*store.Deck, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "deck.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "deck.name = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, name, description
		FROM deck
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY deck.name ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query decks: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Deck, 0)
	for rows.Next() {
		var deck store.Deck
		if err := rows.Scan(&deck.ID, &deck.UID, &deck.Name, &deck.Description); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		list = append(list, &deck)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate decks: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateDeck(ctx context.Context, update *store.UpdateDeck) error {
	set, args := []string{}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, update.ID)

	stmt := `UPDATE deck SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update deck: %w", err)
	}

	return nil
}

func (d *DB) DeleteDeck(ctx context.Context, delete *store.DeleteDeck) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		`DELETE FROM user_answer WHERE card_id IN (SELECT id FROM card WHERE deck_id = $1)`,
		`DELETE FROM card_tag WHERE card_id IN (SELECT id FROM card WHERE deck_id = $1)`,
		`DELETE FROM card WHERE deck_id = $1`,
		`DELETE FROM tag WHERE deck_id = $1`,
		`DELETE FROM deck WHERE id = $1`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, delete.ID); err != nil {
			return fmt.Errorf("failed to delete deck: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
