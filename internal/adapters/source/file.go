package source

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/providers/file"

	"github.com/okian/tally/internal/domain/model"
)

// File reads records from a YAML or JSON document on disk.
type File struct {
	path string
}

// NewFile returns a source reading path on every call to Records.
func NewFile(path string) *File {
	return &File{path: path}
}

// Records reads and decodes the file.
func (f *File) Records(ctx context.Context) ([]model.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	b, err := file.Provider(f.path).ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, f.path, err)
	}
	records, err := decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return records, nil
}

// Name implements Source.
func (f *File) Name() string { return "file" }
