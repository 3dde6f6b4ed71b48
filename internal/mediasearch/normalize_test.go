package mediasearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain upload URL",
			input:    "https://upload.wikimedia.org/wikipedia/commons/a/ab/Albert_Einstein.jpg",
			expected: "https://commons.wikimedia.org/wiki/Special:FilePath/Albert_Einstein.jpg",
		},
		{
			name:     "thumbnail URL extracts embedded original",
			input:    "https://upload.wikimedia.org/wikipedia/commons/thumb/a/ab/Albert_Einstein.jpg/440px-Albert_Einstein.jpg",
			expected: "https://commons.wikimedia.org/wiki/Special:FilePath/Albert_Einstein.jpg",
		},
		{
			name:     "surviving resize prefix is stripped",
			input:    "https://upload.wikimedia.org/wikipedia/commons/a/ab/220px-Saturn.png",
			expected: "https://commons.wikimedia.org/wiki/Special:FilePath/Saturn.png",
		},
		{
			name:     "non-repository URL unchanged",
			input:    "https://example.com/images/cat.jpg",
			expected: "https://example.com/images/cat.jpg",
		},
		{
			name:     "unrecognized extension unchanged",
			input:    "https://upload.wikimedia.org/wikipedia/commons/a/ab/Sound_clip.ogg",
			expected: "https://upload.wikimedia.org/wikipedia/commons/a/ab/Sound_clip.ogg",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"https://upload.wikimedia.org/wikipedia/commons/a/ab/Albert_Einstein.jpg",
		"https://upload.wikimedia.org/wikipedia/commons/thumb/a/ab/Mars.png/120px-Mars.png",
		"https://example.com/foo.gif",
		"not-a-url",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize not idempotent for %q", in)
	}
}

func TestHasImageExtension(t *testing.T) {
	assert.True(t, HasImageExtension("photo.jpg"))
	assert.True(t, HasImageExtension("photo.JPEG"))
	assert.True(t, HasImageExtension("drawing.svg"))
	assert.False(t, HasImageExtension("clip.ogg"))
	assert.False(t, HasImageExtension("page.html"))
	assert.False(t, HasImageExtension("noextension"))
}

func TestFilePathURL(t *testing.T) {
	assert.Equal(t,
		"https://commons.wikimedia.org/wiki/Special:FilePath/Albert_Einstein.jpg",
		FilePathURL("File:Albert Einstein.jpg"))
	assert.Equal(t,
		"https://commons.wikimedia.org/wiki/Special:FilePath/Mars.png",
		FilePathURL("Mars.png"))
}

func TestCleanFileName(t *testing.T) {
	assert.Equal(t, "Albert Einstein", CleanFileName("File:Albert_Einstein.jpg"))
	assert.Equal(t, "solar system diagram", CleanFileName("solar-system_diagram.svg"))
	assert.Equal(t, "noextension", CleanFileName("noextension"))
}
