// Package media loads XY paths from stereo audio files: the left channel is
// read as x and the right channel as y, the way an oscilloscope in XY mode
// draws them.
package media

import (
	"path/filepath"
	"strings"
)

var pathExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
}

// IsSupportedExt returns true if the extension can be loaded as a path.
func IsSupportedExt(ext string) bool {
	return pathExts[strings.ToLower(ext)]
}

// IsSupportedFile reports whether path has a loadable extension.
func IsSupportedFile(path string) bool {
	return IsSupportedExt(filepath.Ext(path))
}

// SupportedExtsList returns a human-readable list of loadable formats.
func SupportedExtsList() string {
	return ".mp3, .wav, .flac, .ogg"
}
