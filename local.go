package coverart

// localCoverExtensions are tried in order by FindLocalCover.
var localCoverExtensions = []string{"jpg", "jpeg", "png", "bmp", "JPG", "JPEG", "PNG", "BMP"}

// FindLocalCover looks for a readable image named baseName in folder and
// returns its path.
//
// Candidates are folder + baseName + "." + ext for each supported extension,
// lower case first. The strings are concatenated as given, so folder needs
// its trailing separator. Only read access is tested; the file content is
// not inspected.
func FindLocalCover(baseName, folder string) (string, bool) {
	base := folder + baseName + "."
	for _, ext := range localCoverExtensions {
		candidate := base + ext
		if readable(candidate) {
			return candidate, true
		}
	}
	return "", false
}
