package files

import (
	"bytes"
	"fmt"

	"github.com/dhowden/tag"
)

const (
	// defaultLanguage is used when the audio container carries no language tag.
	defaultLanguage = "Hindi"

	// defaultPictureFormat is the fixed fallback for embedded pictures with
	// no declared MIME type.
	defaultPictureFormat = "image/jpg"
)

// Picture is an embedded cover image extracted from audio metadata.
type Picture struct {
	Data   []byte
	Format string
}

// AudioMetadata holds the subset of container metadata the upload pipeline
// derives cover keys from. Year is 0 when the container declares none.
type AudioMetadata struct {
	Year     int
	Language string
	Picture  *Picture
}

// parseAudioMetadata reads container metadata from raw audio bytes. On parse
// failure it returns the defaults together with the error so callers can
// degrade to absent metadata and continue.
func parseAudioMetadata(data []byte) (AudioMetadata, error) {
	md := AudioMetadata{Language: defaultLanguage}

	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return md, fmt.Errorf("parse audio metadata: %w", err)
	}

	md.Year = m.Year()
	if lang := rawLanguage(m); lang != "" {
		md.Language = lang
	}

	if pic := m.Picture(); pic != nil && len(pic.Data) > 0 {
		md.Picture = &Picture{
			Data:   pic.Data,
			Format: pictureFormat(pic.MIMEType),
		}
	}

	return md, nil
}

// rawLanguage digs the language tag out of the raw frame map; neither ID3
// nor vorbis expose it through the typed accessors.
func rawLanguage(m tag.Metadata) string {
	raw := m.Raw()
	for _, key := range []string{"TLAN", "LANGUAGE", "language"} {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// pictureFormat returns the declared MIME type or the fixed fallback.
func pictureFormat(declared string) string {
	if declared == "" {
		return defaultPictureFormat
	}
	return declared
}
