package files

import "context"

// Repository persists file records.
type Repository interface {
	// Create inserts a new record and returns it with ID and UploadedAt set.
	Create(ctx context.Context, record *Record) (*Record, error)

	// List returns all records ordered by upload time, newest first.
	List(ctx context.Context) ([]*Record, error)

	// GetByID returns the record with the given id or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*Record, error)

	// Delete removes the record with the given id or returns common.ErrNotFound.
	Delete(ctx context.Context, id string) error
}
