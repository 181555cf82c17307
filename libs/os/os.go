package os

import (
	"bytes"
	"fmt"
	"os"

	"github.com/creachadair/atomicfile"
)

func EnsureDir(dir string, mode os.FileMode) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, mode)
		if err != nil {
			return fmt.Errorf("could not create directory %v: %w", dir, err)
		}
	}
	return nil
}

func FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// WriteFileAtomic writes contents to filePath through a temporary file in
// the same directory, so readers see either the old or the new contents.
func WriteFileAtomic(filePath string, contents []byte, mode os.FileMode) error {
	_, err := atomicfile.WriteAll(filePath, bytes.NewReader(contents), mode)
	return err
}
