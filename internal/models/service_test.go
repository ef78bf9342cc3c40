package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileTypeFromName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"zaffa.mp4", FileTypeVideo},
		{"invite.webm", FileTypeVideo},
		{"clip.MOV", FileTypeVideo},
		{"old-recording.avi", FileTypeVideo},
		{"sheila.mp3", FileTypeAudio},
		{"track.wav", FileTypeAudio},
		{"noext", FileTypeAudio},
		{"archive.tar.mp4", FileTypeVideo},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FileTypeFromName(tc.name), "file %q", tc.name)
	}
}

func TestCategoryFlagOwnership(t *testing.T) {
	assert.True(t, MusicCategory(CategoryZaffat))
	assert.True(t, MusicCategory(CategorySheilat))
	assert.False(t, MusicCategory(CategoryInvitations))
	assert.False(t, MusicCategory(CategoryGreetings))

	assert.True(t, DesignCategory(CategoryInvitations))
	assert.True(t, DesignCategory(CategoryGreetings))
	assert.False(t, DesignCategory(CategoryZaffat))

	// Every category owns exactly one of the two flags.
	for _, cat := range []string{CategoryZaffat, CategorySheilat, CategoryInvitations, CategoryGreetings} {
		assert.NotEqual(t, MusicCategory(cat), DesignCategory(cat), "category %q", cat)
	}
}
