package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/vishalsx/tubstudio-sub001/internal/domain"
)

// IdentifyCacheRepo stores identify responses keyed by image content hash and
// language, so re-identifying the same bytes fills placeholders without a
// round trip.
type IdentifyCacheRepo struct{ *Repo }

func NewIdentifyCacheRepo(db *sql.DB) *IdentifyCacheRepo { return &IdentifyCacheRepo{NewRepo(db)} }

func (r *IdentifyCacheRepo) Get(ctx context.Context, contentHash, language string) (*domain.CacheEntry, error) {
	q := r.SQ.Select("id", "content_hash", "language", "payload", "created_at").
		From("identify_cache").
		Where(sq.Eq{"content_hash": contentHash, "language": language}).
		Limit(1)
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var e domain.CacheEntry
	if err := row.Scan(&e.ID, &e.ContentHash, &e.Language, &e.Payload, &e.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *IdentifyCacheRepo) Put(ctx context.Context, entry *domain.CacheEntry) error {
	now := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Insert("identify_cache").
		Columns("content_hash", "language", "payload", "created_at").
		Values(entry.ContentHash, entry.Language, entry.Payload, now).
		Suffix("ON CONFLICT(content_hash, language) DO UPDATE SET payload=excluded.payload, created_at=excluded.created_at")
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
