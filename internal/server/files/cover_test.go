package files

import (
	"bytes"
	"image"
	"image/png"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDeriveCoverKey_MatchesTemplate(t *testing.T) {
	pic := &Picture{Data: encodePNG(t, 500, 500), Format: "image/png"}
	now := time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC)

	key, err := deriveCoverKey("Song", "English", 2020, pic, now)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^Song-English-2020-20200102\d{6}-500x500\.png$`), key)
}

func TestDeriveCoverKey_MissingYearReadsNull(t *testing.T) {
	pic := &Picture{Data: encodePNG(t, 120, 80), Format: "image/jpg"}
	now := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	key, err := deriveCoverKey("Track", "Hindi", 0, pic, now)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^Track-Hindi-null-20241231\d{6}-120x80\.jpg$`), key)
}

func TestDeriveCoverKey_UndecodableImageFails(t *testing.T) {
	pic := &Picture{Data: []byte("not an image"), Format: "image/png"}

	_, err := deriveCoverKey("Song", "English", 2020, pic, time.Now())
	require.Error(t, err)
}

func TestDateRandomToken(t *testing.T) {
	now := time.Date(2023, 7, 9, 10, 0, 0, 0, time.UTC)

	for range 50 {
		token := dateRandomToken(now)
		require.Len(t, token, 14)
		assert.Equal(t, "20230709", token[:8])

		n, err := strconv.Atoi(token[8:])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}
