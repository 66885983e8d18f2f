package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
)

// draftStore implements driven.DraftStore.
type draftStore struct {
	store *Store
}

var _ driven.DraftStore = (*draftStore)(nil)

// Save inserts or replaces a draft by ID.
func (s *draftStore) Save(ctx context.Context, draft domain.Draft) error {
	if draft.ID == "" {
		return domain.ErrInvalidInput
	}
	state, err := json.Marshal(draft.State)
	if err != nil {
		return fmt.Errorf("encoding draft state: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO drafts (id, name, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			state = excluded.state,
			updated_at = excluded.updated_at
	`, draft.ID, draft.Name, string(state), formatTime(draft.CreatedAt), formatTime(draft.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// Get returns the draft with the given ID.
func (s *draftStore) Get(ctx context.Context, id string) (*domain.Draft, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, state, created_at, updated_at FROM drafts WHERE id = ?
	`, id)
	return scanDraft(row)
}

// Delete removes a draft; its builds go with it through the foreign key.
func (s *draftStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM drafts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all drafts, most recently updated first.
func (s *draftStore) List(ctx context.Context) ([]domain.Draft, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, state, created_at, updated_at FROM drafts
		ORDER BY updated_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying drafts: %w", err)
	}
	defer rows.Close()

	var drafts []domain.Draft //nolint:prealloc // size unknown from query
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drafts: %w", err)
	}
	return drafts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDraft(row scanner) (*domain.Draft, error) {
	var d domain.Draft
	var state, created, updated string
	if err := row.Scan(&d.ID, &d.Name, &state, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning draft: %w", err)
	}
	if err := json.Unmarshal([]byte(state), &d.State); err != nil {
		return nil, fmt.Errorf("decoding draft %s: %w", d.ID, err)
	}
	d.CreatedAt = parseTime(created)
	d.UpdatedAt = parseTime(updated)
	return &d, nil
}

// timeLayout is fixed width so stored text sorts in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
