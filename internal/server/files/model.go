package files

import "time"

// Record is the persisted metadata entry for one uploaded file. It is
// created exactly once at upload time and never partially updated.
type Record struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`
	Key           string    `json:"key"`
	ViewURL       string    `json:"viewUrl"`
	DownloadURL   string    `json:"downloadUrl"`
	CoverImageURL *string   `json:"coverImageUrl"`
	FileSize      int64     `json:"fileSize"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

// Upload is one file received from the HTTP layer, consumed by the upload
// pipeline to produce a Record.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
