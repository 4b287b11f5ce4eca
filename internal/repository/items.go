package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gopaska/lookbot/internal/domain"
)

// ItemStore owns the items table: idempotent inserts keyed by file_unique_id,
// retention purges and filtered lookups. Rows are never updated.
type ItemStore struct {
	db *pgxpool.Pool
}

func NewItemStore(db *pgxpool.Pool) *ItemStore {
	return &ItemStore{db: db}
}

// Upsert stores an item unless one with the same file_unique_id already
// exists. First write wins; a redelivered photo is a silent no-op. Returns
// whether a row was actually inserted.
func (s *ItemStore) Upsert(ctx context.Context, item domain.Item) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO items (file_unique_id, file_id, message_id, captured_at,
			category, style, color, season, raw_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (file_unique_id) DO NOTHING`,
		item.FileUniqueID,
		item.FileID,
		item.MessageID,
		item.CapturedAt,
		item.Attributes.Category,
		item.Attributes.Style,
		item.Attributes.Color,
		item.Attributes.Season,
		nullIfEmpty(item.RawDescription),
	)
	if err != nil {
		return false, fmt.Errorf("upsert item %s: %w", item.FileUniqueID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Get returns a single item by its unique media key.
func (s *ItemStore) Get(ctx context.Context, fileUniqueID string) (*domain.Item, error) {
	row := s.db.QueryRow(ctx, `
		SELECT file_unique_id, file_id, message_id, captured_at,
			category, style, color, season, raw_description, stored_at
		FROM items WHERE file_unique_id = $1`, fileUniqueID)

	item, err := scanItem(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("get item %s: %w", fileUniqueID, err)
	}
	return item, nil
}

// Exists reports whether an item with the given media key is stored.
func (s *ItemStore) Exists(ctx context.Context, fileUniqueID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM items WHERE file_unique_id = $1)`,
		fileUniqueID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check item %s: %w", fileUniqueID, err)
	}
	return exists, nil
}

// PurgeOlderThan deletes items whose captured_at is older than the given age
// and reports how many rows were removed.
func (s *ItemStore) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	tag, err := s.db.Exec(ctx, `DELETE FROM items WHERE captured_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge items older than %s: %w", age, err)
	}
	return tag.RowsAffected(), nil
}

// Find returns items matching the filter, most recent first, capped at limit.
// An all-empty filter matches everything.
func (s *ItemStore) Find(ctx context.Context, filter *domain.FilterState, limit int) ([]domain.Item, error) {
	query, args := buildFindQuery(filter, limit)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var (
		item    domain.Item
		rawDesc *string
	)
	err := row.Scan(
		&item.FileUniqueID,
		&item.FileID,
		&item.MessageID,
		&item.CapturedAt,
		&item.Attributes.Category,
		&item.Attributes.Style,
		&item.Attributes.Color,
		&item.Attributes.Season,
		&rawDesc,
		&item.StoredAt,
	)
	if err != nil {
		return nil, err
	}
	if rawDesc != nil {
		item.RawDescription = *rawDesc
	}
	return &item, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
