package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
)

// buildStore implements driven.BuildStore.
type buildStore struct {
	store *Store
}

var _ driven.BuildStore = (*buildStore)(nil)

const buildColumns = `id, draft_id, seq, model, prompt, code, valid, diagnostic, validator, error, created_at`

// Save records a build.
func (s *buildStore) Save(ctx context.Context, b domain.Build) error {
	if b.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO builds (`+buildColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			code = excluded.code,
			valid = excluded.valid,
			diagnostic = excluded.diagnostic,
			validator = excluded.validator,
			error = excluded.error
	`, b.ID, nullString(b.DraftID), int64(b.Seq), b.Model, b.Prompt, b.Code, //nolint:gosec // seq fits
		boolToInt(b.Validation.Valid), nullString(b.Validation.Diagnostic), b.Validation.Validator,
		nullString(b.Err), formatTime(b.CreatedAt))
	if err != nil {
		return fmt.Errorf("saving build: %w", err)
	}
	return nil
}

// Get returns the build with the given ID.
func (s *buildStore) Get(ctx context.Context, id string) (*domain.Build, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+buildColumns+" FROM builds WHERE id = ?", id)
	return scanBuild(row)
}

// ListByDraft returns builds for a draft, newest first.
func (s *buildStore) ListByDraft(ctx context.Context, draftID string, limit int) ([]domain.Build, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative limit as unbounded
	}
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+buildColumns+` FROM builds
		WHERE draft_id = ?
		ORDER BY created_at DESC, seq DESC
		LIMIT ?
	`, draftID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying builds: %w", err)
	}
	defer rows.Close()

	var builds []domain.Build //nolint:prealloc // size unknown from query
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating builds: %w", err)
	}
	return builds, nil
}

func scanBuild(row scanner) (*domain.Build, error) {
	var b domain.Build
	var draftID, diagnostic, errMsg sql.NullString
	var seq int64
	var valid int
	var created string

	if err := row.Scan(&b.ID, &draftID, &seq, &b.Model, &b.Prompt, &b.Code,
		&valid, &diagnostic, &b.Validation.Validator, &errMsg, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning build: %w", err)
	}

	b.DraftID = draftID.String
	b.Seq = uint64(seq) //nolint:gosec // stored from a uint64
	b.Validation.Valid = valid == 1
	b.Validation.Diagnostic = diagnostic.String
	b.Err = errMsg.String
	b.CreatedAt = parseTime(created)
	return &b, nil
}
