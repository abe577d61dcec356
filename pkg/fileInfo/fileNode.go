package fileInfo

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

const defaultMimeType = "application/octet-stream"

// ErrIsDir is returned when a directory is offered where a single file is expected.
var ErrIsDir = errors.New("path is a directory")

// File is a local file picked for upload.
type File struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type,omitempty"`
	Path     string `json:"-"`
}

// CreateFile stats path and sniffs its content type.
func CreateFile(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s: %w", path, ErrIsDir)
	}

	file := File{
		Name:     info.Name(),
		Size:     info.Size(),
		Path:     path,
		MimeType: defaultMimeType,
	}
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		slog.Warn("could not detect mime type", "path", path, "error", err)
	} else {
		file.MimeType = mime.String()
	}
	return file, nil
}

// Open returns the file's contents for reading.
func (f *File) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}
