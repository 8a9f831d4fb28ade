package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// placeholder returns the n-th PostgreSQL placeholder ($1, $2, ...).
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// placeholders returns n placeholders starting at $1.
func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
}

func encodeAnswers(answers []string) (string, error) {
	buf, err := json.Marshal(answers)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode answers")
	}
	return string(buf), nil
}

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

func nullableTs(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func tsPointer(ts sql.NullInt64) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := time.Unix(ts.Int64, 0)
	return &t
}
