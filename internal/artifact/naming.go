package artifact

import "path/filepath"

// LibraryFileName returns the file name cargo gives a cdylib crate on goos.
func LibraryFileName(crate, goos string) string {
	switch goos {
	case "windows":
		return crate + ".dll"
	case "darwin", "ios":
		return "lib" + crate + ".dylib"
	default:
		return "lib" + crate + ".so"
	}
}

// ReleasePath returns where a release build of crate lands under targetDir.
func ReleasePath(targetDir, crate, goos string) string {
	return filepath.Join(targetDir, "release", LibraryFileName(crate, goos))
}
