package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/drillsrs/drill/store"
)

func (d *DB) CreateAnswer(ctx context.Context, create *store.Answer) (*store.Answer, error) {
	stmt := `INSERT INTO user_answer (card_id, date_ts, text, is_correct)
		VALUES (` + placeholders(4) + `) RETURNING id`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.CardID, create.Date.Unix(), create.Text, create.IsCorrect,
	).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create answer: %w", err)
	}

	return create, nil
}

func (d *DB) ListAnswers(ctx context.Context, find *store.FindAnswer) ([]*store.Answer, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.CardID; v != nil {
		where, args = append(where, "user_answer.card_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, card_id, date_ts, text, is_correct
		FROM user_answer
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY user_answer.date_ts ASC, user_answer.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Answer, 0)
	for rows.Next() {
		var answer store.Answer
		var dateTs int64
		if err := rows.Scan(&answer.ID, &answer.CardID, &dateTs, &answer.Text, &answer.IsCorrect); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answer.Date = time.Unix(dateTs, 0)
		list = append(list, &answer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate answers: %w", err)
	}

	return list, nil
}
