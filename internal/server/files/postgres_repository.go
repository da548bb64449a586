package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"songvault/internal/common"
)

// PostgresRepository implements Repository on top of *sql.DB (pgx stdlib).
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, record *Record) (*Record, error) {

	record.ID = uuid.NewString()

	query := `
		INSERT INTO files (id, filename, key, view_url, download_url, cover_image_url, file_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING uploaded_at
	`

	var cover sql.NullString
	if record.CoverImageURL != nil {
		cover = sql.NullString{String: *record.CoverImageURL, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		record.ID, record.Filename, record.Key, record.ViewURL, record.DownloadURL, cover, record.FileSize,
	).Scan(&record.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return record, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Record, error) {
	query := `
		SELECT id, filename, key, view_url, download_url, cover_image_url, file_size, uploaded_at
		FROM files
		ORDER BY uploaded_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*Record
	for rows.Next() {
		item, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Record, error) {
	query := `
		SELECT id, filename, key, view_url, download_url, cover_image_url, file_size, uploaded_at
		FROM files
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	item, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanRecord(scan func(dest ...any) error) (*Record, error) {
	var item Record
	var cover sql.NullString
	if err := scan(&item.ID, &item.Filename, &item.Key, &item.ViewURL, &item.DownloadURL,
		&cover, &item.FileSize, &item.UploadedAt); err != nil {
		return nil, err
	}
	if cover.Valid {
		item.CoverImageURL = &cover.String
	}
	return &item, nil
}
