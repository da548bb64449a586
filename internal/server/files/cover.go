package files

import (
	"bytes"
	"fmt"
	"image"
	"math/rand"
	"strconv"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// dateRandomToken returns an 8-digit local date plus a 6-digit random
// numeral. Together with the image dimensions it keeps derived cover keys
// from colliding without an existence check against the store.
func dateRandomToken(now time.Time) string {
	return fmt.Sprintf("%s%06d", now.Format("20060102"), 100000+rand.Intn(900000))
}

// deriveCoverKey builds the storage key for an embedded cover image:
//
//	{base}-{language}-{year|"null"}-{dateRandomToken}-{width}x{height}.{ext}
//
// The extension is the subtype of the picture's declared MIME format. The
// image bytes must decode; a cover that reaches this point is expected to
// be usable, so a decode failure is returned as an error.
func deriveCoverKey(baseName, language string, year int, pic *Picture, now time.Time) (string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(pic.Data))
	if err != nil {
		return "", fmt.Errorf("decode cover image: %w", err)
	}

	ext := pic.Format
	if i := strings.Index(ext, "/"); i >= 0 {
		ext = ext[i+1:]
	}

	yearSegment := "null"
	if year != 0 {
		yearSegment = strconv.Itoa(year)
	}

	return fmt.Sprintf("%s-%s-%s-%s-%dx%d.%s",
		baseName, language, yearSegment, dateRandomToken(now), cfg.Width, cfg.Height, ext), nil
}
