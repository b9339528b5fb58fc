// Package platform holds the thin host layer under the engine: file
// access, the audio stream lifecycle and the hand-off of committed frames
// to presentation goroutines.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetFullPath expands a leading ~ and returns an absolute path.
func GetFullPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("platform: empty path")
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("platform: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("platform: cannot resolve %s: %w", path, err)
	}
	return abs, nil
}

// ReadFile reads a whole file after resolving its path.
func ReadFile(path string) ([]byte, error) {
	full, err := GetFullPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("platform: cannot read %s: %w", full, err)
	}
	return data, nil
}

// WriteFile writes a whole file, creating parent directories. The data
// goes to a temporary file first and is renamed into place.
func WriteFile(path string, data []byte) error {
	full, err := GetFullPath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("platform: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(full)+".*")
	if err != nil {
		return fmt.Errorf("platform: cannot write %s: %w", full, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("platform: cannot write %s: %w", full, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("platform: cannot write %s: %w", full, err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return fmt.Errorf("platform: cannot write %s: %w", full, err)
	}
	return nil
}
