package coverart

// SaveEmbeddedCover opens audioPath and writes its embedded cover to target.
// It returns false when the file cannot be opened, has no cover, or the
// cover cannot be written.
func SaveEmbeddedCover(audioPath, target string) bool {
	f, err := Open(audioPath)
	if err != nil {
		return false
	}
	data, ok := EmbeddedCover(f)
	if !ok {
		return false
	}
	return WriteCover(data, target)
}

// ComposerOf opens audioPath and returns its composer.
func ComposerOf(audioPath string) (string, bool) {
	f, err := Open(audioPath)
	if err != nil {
		return "", false
	}
	return Composer(f)
}
