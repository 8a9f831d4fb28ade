package sqlite

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// placeholder returns a placeholder for SQLite (uses ?).
func placeholder(_ int) string {
	return "?"
}

// placeholders returns n placeholders for SQLite.
func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
}

// encodeAnswers serializes a card's acceptable answers into the answers
// column.
func encodeAnswers(answers []string) (string, error) {
	buf, err := json.Marshal(answers)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode answers")
	}
	return string(buf), nil
}

// decodeAnswers deserializes the answers column.
func decodeAnswers(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var answers []string
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, errors.Wrap(err, "failed to decode answers")
	}
	return answers, nil
}

// nullableTs converts an optional time to a nullable unix timestamp column
// value.
func nullableTs(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

// tsPointer converts a nullable unix timestamp column value back to an
// optional time.
func tsPointer(ts sql.NullInt64) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := time.Unix(ts.Int64, 0)
	return &t
}
