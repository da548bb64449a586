package files

import (
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		original string
		want     string
	}{
		{"plain name untouched", "Tum Hi Ho.mp3", "Tum Hi Ho.mp3"},
		{"promo tag removed", "Tum Hi Ho (MyMp3Song).mp3", "Tum Hi Ho .mp3"},
		{"plural form removed", "Track(MyMp3Songs).mp3", "Track.mp3"},
		{"case insensitive", "Track (MYMP3SONG).mp3", "Track .mp3"},
		{"mixed case plural", "Track (mymp3songs).mp3", "Track .mp3"},
		{"whitespace preserved", "  A  B .mp3", "  A  B .mp3"},
		{"punctuation preserved", "A, B - C.mp3", "A, B - C.mp3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DisplayName(tc.original))
		})
	}
}

func TestStorageKey(t *testing.T) {
	tests := []struct {
		name     string
		original string
		want     string
	}{
		{"plain name", "Track.mp3", "Track.mp3"},
		{"spaces collapsed", "Tum  Hi   Ho.mp3", "Tum-Hi-Ho.mp3"},
		{"hyphen runs collapsed", "A --- B.mp3", "A-B.mp3"},
		{"comma runs collapsed", "A,,B, C.mp3", "A-B-C.mp3"},
		{"mixed separator run", "A -, B.mp3", "A-B.mp3"},
		{"promo tag removed", "Track(MyMp3Song).wav", "Track.wav"},
		{"promo tag plural removed", "Track(MYMP3SONGS).flac", "Track.flac"},
		{"extension kept", "Tum Hi Ho (MyMp3Song).mp3", "Tum-Hi-Ho-.mp3"},
		{"tag-only filename collapses", "(MyMp3Song)", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StorageKey(tc.original))
		})
	}
}

func TestStorageKey_NoSeparatorRunsRemain(t *testing.T) {
	run := regexp.MustCompile(`[\s,]|--`)

	inputs := []string{
		"Tum  Hi -- Ho ,, (MyMp3Song).mp3",
		"  leading and trailing  .ogg  ",
		"a,b,c - d.flac",
	}

	for _, in := range inputs {
		key := StorageKey(in)
		assert.False(t, run.MatchString(key), "key %q derived from %q still contains a separator run", key, in)
	}
}

func TestBaseTrackName(t *testing.T) {
	tests := []struct {
		name     string
		original string
		want     string
	}{
		{"extension stripped", "Track.mp3", "Track"},
		{"collapsed and stripped", "Tum  Hi Ho.mp3", "Tum-Hi-Ho"},
		{"promo tag removed", "Track (MyMp3Song).mp3", "Track-"},
		{"only last extension stripped", "a.b.mp3", "a.b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BaseTrackName(tc.original))
		})
	}
}

func TestStorageKey_EscapeRoundTrip(t *testing.T) {
	keys := []string{
		"Tum-Hi-Ho.mp3",
		"Song-(Remix).mp3",
		"Track-100%.mp3",
	}

	for _, key := range keys {
		escaped := url.PathEscape(key)
		decoded, err := url.PathUnescape(escaped)
		require.NoError(t, err)
		assert.Equal(t, key, decoded)
	}
}
