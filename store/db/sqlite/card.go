package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/drillsrs/drill/store"
)

func (d *DB) CreateCard(ctx context.Context, create *store.Card) (*store.Card, error) {
	answers, err := encodeAnswers(create.Answers)
	if err != nil {
		return nil, err
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	fields := []string{"uid", "deck_id", "num", "question", "answers", "active", "activation_ts", "due_ts"}
	placeholderValues := []any{
		create.UID, create.DeckID, create.Num, create.Question, answers,
		create.IsActive, nullableTs(create.ActivationDate), nullableTs(create.DueDate),
	}

	stmt := `INSERT INTO card (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id`

	if err := tx.QueryRowContext(ctx, stmt, placeholderValues...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	for _, tag := range create.Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO card_tag (card_id, tag_id) VALUES (?, ?)`,
			create.ID, tag.ID,
		); err != nil {
			return nil, fmt.Errorf("failed to attach tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return create, nil
}

func (d *DB) ListCards(ctx context.Context, find *store.FindCard) ([]*store.Card, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "card.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.DeckID; v != nil {
		where, args = append(where, "card.deck_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Num; v != nil {
		where, args = append(where, "card.num = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.IsActive; v != nil {
		where, args = append(where, "card.active = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.QuestionLike; v != nil {
		where, args = append(where, "LOWER(card.question) LIKE LOWER("+placeholder(len(args)+1)+")"), append(args, *v)
	}

	orderBy := "ORDER BY card.num ASC"
	if find.OrderBy == store.CardOrderDueDate {
		orderBy = "ORDER BY card.active DESC, card.due_ts ASC, card.num ASC"
	}

	query := `
		SELECT id, uid, deck_id, num, question, answers, active, activation_ts, due_ts
		FROM card
		WHERE ` + strings.Join(where, " AND ") + ` ` + orderBy

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Card, 0)
	for rows.Next() {
		var card store.Card
		var answers string
		var activationTs, dueTs sql.NullInt64

		if err := rows.Scan(
			&card.ID,
			&card.UID,
			&card.DeckID,
			&card.Num,
			&card.Question,
			&answers,
			&card.IsActive,
			&activationTs,
			&dueTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}

		if card.Answers, err = decodeAnswers(answers); err != nil {
			return nil, err
		}
		card.ActivationDate = tsPointer(activationTs)
		card.DueDate = tsPointer(dueTs)

		list = append(list, &card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	if err := d.loadCardTags(ctx, list); err != nil {
		return nil, err
	}

	return list, nil
}

// loadCardTags attaches tag references to the listed cards.
func (d *DB) loadCardTags(ctx context.Context, cards []*store.Card) error {
	if len(cards) == 0 {
		return nil
	}

	byID := make(map[int32]*store.Card, len(cards))
	ids := make([]string, 0, len(cards))
	args := make([]any, 0, len(cards))
	for _, card := range cards {
		byID[card.ID] = card
		ids = append(ids, "?")
		args = append(args, card.ID)
	}

	query := `
		SELECT card_tag.card_id, tag.id, tag.deck_id, tag.name, tag.color
		FROM card_tag
		JOIN tag ON tag.id = card_tag.tag_id
		WHERE card_tag.card_id IN (` + strings.Join(ids, ", ") + `)
		ORDER BY tag.name ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query card tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cardID int32
		var tag store.Tag
		if err := rows.Scan(&cardID, &tag.ID, &tag.DeckID, &tag.Name, &tag.Color); err != nil {
			return fmt.Errorf("failed to scan card tag: %w", err)
		}
		if card, ok := byID[cardID]; ok {
			card.Tags = append(card.Tags, &tag)
		}
	}

	return rows.Err()
}

// updateCardTx applies a card update inside an existing transaction.
func updateCardTx(ctx context.Context, tx *sql.Tx, update *store.UpdateCard) error {
	set, args := []string{}, []any{}

	if v := update.Num; v != nil {
		set, args = append(set, "num = ?"), append(args, *v)
	}
	if v := update.Question; v != nil {
		set, args = append(set, "question = ?"), append(args, *v)
	}
	if v := update.Answers; v != nil {
		answers, err := encodeAnswers(*v)
		if err != nil {
			return err
		}
		set, args = append(set, "answers = ?"), append(args, answers)
	}
	if v := update.IsActive; v != nil {
		set, args = append(set, "active = ?"), append(args, *v)
	}
	if v := update.ActivationDate; v != nil {
		set, args = append(set, "activation_ts = ?"), append(args, v.Unix())
	}
	if v := update.DueDate; v != nil {
		set, args = append(set, "due_ts = ?"), append(args, v.Unix())
	}

	if len(set) > 0 {
		args = append(args, update.ID)
		stmt := `UPDATE card SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}
	}

	if v := update.TagIDs; v != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM card_tag WHERE card_id = ?`, update.ID); err != nil {
			return fmt.Errorf("failed to detach tags: %w", err)
		}
		for _, tagID := range *v {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO card_tag (card_id, tag_id) VALUES (?, ?)`,
				update.ID, tagID,
			); err != nil {
				return fmt.Errorf("failed to attach tag: %w", err)
			}
		}
	}

	return nil
}

func (d *DB) UpdateCard(ctx context.Context, update *store.UpdateCard) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := updateCardTx(ctx, tx, update); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (d *DB) DeleteCard(ctx context.Context, delete *store.DeleteCard) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		`DELETE FROM user_answer WHERE card_id = ?`,
		`DELETE FROM card_tag WHERE card_id = ?`,
		`DELETE FROM card WHERE id = ?`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, delete.ID); err != nil {
			return fmt.Errorf("failed to delete card: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (d *DB) MoveCard(ctx context.Context, move *store.MoveCard) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if move.OldNum != nil {
		oldNum := *move.OldNum
		switch {
		case move.NewNum > oldNum:
			if _, err := tx.ExecContext(ctx,
				`UPDATE card SET num = num - 1 WHERE deck_id = ? AND num > ? AND num <= ? AND id != ?`,
				move.DeckID, oldNum, move.NewNum, move.CardID,
			); err != nil {
				return fmt.Errorf("failed to shift cards: %w", err)
			}
		case move.NewNum < oldNum:
			if _, err := tx.ExecContext(ctx,
				`UPDATE card SET num = num + 1 WHERE deck_id = ? AND num >= ? AND num < ? AND id != ?`,
				move.DeckID, move.NewNum, oldNum, move.CardID,
			); err != nil {
				return fmt.Errorf("failed to shift cards: %w", err)
			}
		}
	} else {
		// Brand-new card with no meaningful position yet: make room at
		// the target slot.
		if _, err := tx.ExecContext(ctx,
			`UPDATE card SET num = num + 1 WHERE deck_id = ? AND num >= ? AND id != ?`,
			move.DeckID, move.NewNum, move.CardID,
		); err != nil {
			return fmt.Errorf("failed to shift cards: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE card SET num = ? WHERE id = ?`,
		move.NewNum, move.CardID,
	); err != nil {
		return fmt.Errorf("failed to move card: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (d *DB) MaxCardNum(ctx context.Context, find *store.MaxCardNum) (int, error) {
	query := `SELECT COALESCE(MAX(num), 0) FROM card WHERE deck_id = ?`
	if find.ActiveOnly {
		query += ` AND active = 1`
	}

	var max int
	if err := d.db.QueryRowContext(ctx, query, find.DeckID).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to query max card num: %w", err)
	}
	return max, nil
}

func (d *DB) RecordReview(ctx context.Context, record *store.RecordReview) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	answer := record.Answer
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO user_answer (card_id, date_ts, text, is_correct) VALUES (?, ?, ?, ?) RETURNING id`,
		answer.CardID, answer.Date.Unix(), answer.Text, answer.IsCorrect,
	).Scan(&answer.ID); err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}

	if record.Update != nil {
		if err := updateCardTx(ctx, tx, record.Update); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
