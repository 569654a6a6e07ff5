package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/careerpath/advisor/internal/profile"
)

// profileBackend implements profile.Backend on the profile_fields table.
type profileBackend struct {
	db *sql.DB
}

var _ profile.Backend = (*profileBackend)(nil)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (b *profileBackend) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := builder().Select("value").
		From(entsql.Table(profileTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var value string
	err := b.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get profile field %q: %w", key, err)
	}
	return value, true, nil
}

func (b *profileBackend) Set(ctx context.Context, key, value string) error {
	query, args := builder().Insert(profileTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := b.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set profile field %q: %w", key, err)
	}
	return nil
}

// Remove deletes all keys in one statement, so a partial clear is never
// visible to other readers.
func (b *profileBackend) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	query, qargs := builder().Delete(profileTable).
		Where(entsql.In("key", args...)).
		Query()

	if _, err := b.db.ExecContext(ctx, query, qargs...); err != nil {
		return fmt.Errorf("remove profile fields: %w", err)
	}
	return nil
}
