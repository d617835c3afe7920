package journal

import (
	"context"
	"strings"
)

// Open dispatches on the connection-string scheme: postgres URLs get the
// pgx-backed store, anything else is treated as a SQLite file path (an
// optional sqlite:// prefix is accepted).
func Open(ctx context.Context, databaseURL string) (Store, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"),
		strings.HasPrefix(databaseURL, "postgresql://"):
		return NewPostgres(ctx, databaseURL)
	default:
		return NewSQLite(strings.TrimPrefix(databaseURL, "sqlite://"))
	}
}
