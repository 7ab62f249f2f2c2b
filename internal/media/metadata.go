package media

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Metadata names a path source for the window title and status line.
type Metadata struct {
	Title  string
	Artist string
}

// Label joins artist and title when both are known.
func (m Metadata) Label() string {
	if m.Artist != "" && m.Title != "" {
		return m.Artist + " - " + m.Title
	}
	return m.Title
}

// ReadMetadata reads ID3v2 tags from MP3 files, falling back to the file
// name for everything else.
func ReadMetadata(path string) Metadata {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
		if err == nil {
			defer tag.Close()
			m := Metadata{
				Title:  strings.TrimSpace(tag.Title()),
				Artist: strings.TrimSpace(tag.Artist()),
			}
			if m.Title != "" {
				return m
			}
		}
	}

	base := filepath.Base(path)
	return Metadata{Title: strings.TrimSuffix(base, filepath.Ext(base))}
}
