package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Touch makes sure the file at path exists without altering existing
// content. With createDirs set, missing parent directories are created
// first. The file is opened in append mode and closed immediately, so a
// pre-existing file keeps its bytes.
func Touch(path string, createDirs bool) error {
	if createDirs {
		dir := filepath.Dir(path)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("could not create directory %s: %w", dir, err)
			}
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not create or open file %s: %w", path, err)
	}
	return f.Close()
}
