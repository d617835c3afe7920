package journal

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Column codecs shared by the SQLite and Postgres stores. Leg arrays travel
// as JSON so order and duplicate strikes survive the round trip; nil slices
// map to NULL, never to an empty array.

func legsToJSON[T any](legs []T) (any, error) {
	if legs == nil {
		return nil, nil
	}
	b, err := json.Marshal(legs)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func legsFromJSON[T any](col sql.NullString) ([]T, error) {
	if !col.Valid || col.String == "" {
		return nil, nil
	}
	var legs []T
	if err := json.Unmarshal([]byte(col.String), &legs); err != nil {
		return nil, err
	}
	return legs, nil
}

func legsFromRaw[T any](raw []byte) ([]T, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var legs []T
	if err := json.Unmarshal(raw, &legs); err != nil {
		return nil, err
	}
	return legs, nil
}

// dateColumn stores calendar dates as their YYYY-MM-DD wire form.
func dateColumn(t time.Time) string {
	return t.Format(DateFormat)
}

func dateOrNull(t *time.Time) any {
	if t == nil {
		return nil
	}
	return dateColumn(*t)
}

func textOrNull(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func ptrFromNullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func ptrFromNullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
