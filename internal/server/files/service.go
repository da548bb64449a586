// Package files implements the upload pipeline: filename sanitization,
// audio metadata extraction, cover-key derivation and record assembly,
// plus the list/download/delete operations over stored records.
package files

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"songvault/internal/common"
	"songvault/internal/logging"
	sc "songvault/internal/server/config"
)

// parseAudio is a seam for tests; production code always uses
// parseAudioMetadata.
var parseAudio = parseAudioMetadata

// ObjectStorage is the object-store collaborator the service uploads to.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error)
	PublicURL(key string) string
}

// Service runs the per-file upload pipeline and manages stored records.
type Service struct {
	repo    Repository
	storage ObjectStorage
	config  *sc.Config
	logger  logging.Logger
}

func NewService(repo Repository, storage ObjectStorage, config *sc.Config, logger logging.Logger) *Service {
	return &Service{
		repo:    repo,
		storage: storage,
		config:  config,
		logger:  logger.With("module", "files"),
	}
}

// UploadBatch processes all files of one upload request concurrently.
// A single failing file fails the whole batch; no partial results are
// reported. On success the returned records preserve request order.
func (s *Service) UploadBatch(ctx context.Context, uploads []Upload) ([]*Record, error) {
	if len(uploads) == 0 {
		return nil, common.ErrNoFilesUploaded
	}

	records := make([]*Record, len(uploads))

	g, ctx := errgroup.WithContext(ctx)
	for i, u := range uploads {
		g.Go(func() error {
			record, err := s.processUpload(ctx, u)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// processUpload runs the derivation pipeline for one file: sanitize the
// name, extract audio metadata, derive and upload the cover image if one
// is embedded, upload the primary object and persist the record.
func (s *Service) processUpload(ctx context.Context, u Upload) (*Record, error) {
	displayName := DisplayName(u.Filename)
	key := StorageKey(u.Filename)

	var coverKey string
	if strings.HasPrefix(u.ContentType, "audio/") {
		md, err := parseAudio(u.Data)
		if err != nil {
			// Degrade to absent metadata; the record can still be built.
			s.logger.Warn(ctx, "audio metadata unavailable", "filename", u.Filename, "error", err.Error())
		}

		if md.Picture != nil {
			derived, err := deriveCoverKey(BaseTrackName(u.Filename), md.Language, md.Year, md.Picture, time.Now())
			if err != nil {
				return nil, err
			}

			if err := s.storage.Put(ctx, derived, md.Picture.Data, md.Picture.Format); err != nil {
				return nil, fmt.Errorf("upload cover image: %w", err)
			}
			coverKey = derived
		}
	}

	if err := s.storage.Put(ctx, key, u.Data, u.ContentType); err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	record := &Record{
		Filename:    displayName,
		Key:         key,
		ViewURL:     s.config.BaseURL + "/api/files/view/" + url.PathEscape(key),
		DownloadURL: s.config.BaseURL + "/api/files/download/" + url.PathEscape(key),
		FileSize:    int64(len(u.Data)),
	}
	if coverKey != "" {
		coverURL := s.config.BaseURL + "/api/files/viewCoverImage/" + url.PathEscape(coverKey)
		record.CoverImageURL = &coverURL
	}

	return s.repo.Create(ctx, record)
}

// List returns all stored records, newest first.
func (s *Service) List(ctx context.Context) ([]*Record, error) {
	return s.repo.List(ctx)
}

// Delete removes a record and its backing objects: always the primary
// object, plus the cover image when the record carries one.
func (s *Service) Delete(ctx context.Context, id string) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, record.Key); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	if record.CoverImageURL != nil {
		if coverKey := coverKeyFromURL(*record.CoverImageURL); coverKey != "" {
			if err := s.storage.Delete(ctx, coverKey); err != nil {
				return fmt.Errorf("delete cover object: %w", err)
			}
		}
	}

	return s.repo.Delete(ctx, record.ID)
}

// PublicURL returns the public-read object address for a storage key.
func (s *Service) PublicURL(key string) string {
	return s.storage.PublicURL(key)
}

// PresignDownload returns a short-lived download URL for a storage key.
func (s *Service) PresignDownload(ctx context.Context, key string) (string, error) {
	return s.storage.PresignDownload(ctx, key, s.config.PresignExpiry)
}

// coverKeyFromURL recovers the cover storage key from the trailing path
// segment of a stored cover URL.
func coverKeyFromURL(coverURL string) string {
	segment := coverURL[strings.LastIndex(coverURL, "/")+1:]
	if decoded, err := url.PathUnescape(segment); err == nil {
		return decoded
	}
	return segment
}
