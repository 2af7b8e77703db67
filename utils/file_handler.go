package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Legacy .xls is not accepted: the Excel parser reads OOXML workbooks only.
var importExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// SaveImportFile writes an uploaded import file under dir with a unique name
// and returns its path. The caller removes the file when processing is done.
func SaveImportFile(file multipart.File, header *multipart.FileHeader, dir string, maxSize int64) (string, error) {
	if header.Size > maxSize {
		return "", fmt.Errorf("file size exceeds maximum limit of %d bytes", maxSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !importExtensions[ext] {
		return "", fmt.Errorf("unsupported file type: %s. Allowed types: csv, xlsx", ext)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %v", err)
	}

	path := filepath.Join(dir, uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %v", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to save file: %v", err)
	}
	return path, nil
}

// RemoveImportFile deletes a temporary import file.
func RemoveImportFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}
