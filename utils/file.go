package utils

import (
	"os"
	"path/filepath"
)

// EnsureUploadDir creates the local uploads directory if it doesn't exist.
// It backs catalog images when the R2 gateway is disabled.
func EnsureUploadDir() error {
	return os.MkdirAll("uploads", os.ModePerm)
}

// SaveLocalFile writes the bytes into the uploads directory and returns the
// path the static file server exposes it under.
func SaveLocalFile(data []byte, filename string) (string, error) {
	dest := filepath.Join("uploads", filename)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", err
	}
	return "/uploads/" + filename, nil
}
