package vcs

import (
	"github.com/spf13/afero"
)

// ContentReader is a function that reads file content given a file path.
// This allows the caller to control how files are read (filesystem, git, etc.)
type ContentReader func(filePath string) ([]byte, error)

// FilesystemContentReader reads files from fs. A nil fs reads from the OS.
func FilesystemContentReader(fs afero.Fs) ContentReader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return func(filePath string) ([]byte, error) {
		return afero.ReadFile(fs, filePath)
	}
}
