package catalog

import (
	"context"
	"fmt"
	"os"

	"culinarycompass/models"
)

// FileSource reads the catalog from a JSON document on disk.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (f *FileSource) Name() string { return "file" }

// Load reads and decodes the whole file. A missing file, a syntax error or a
// bad record all fail the load.
func (f *FileSource) Load(ctx context.Context) ([]models.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	restaurants, err := DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return restaurants, nil
}
