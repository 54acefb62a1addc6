package source

import (
	"context"
	"fmt"
	"io"

	"github.com/okian/tally/internal/domain/model"
)

// Reader reads records from an io.Reader such as stdin. The reader is
// consumed on the first call; later calls see an empty document.
type Reader struct {
	r io.Reader
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Records reads r to EOF and decodes it.
func (s *Reader) Records(ctx context.Context) ([]model.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	b, err := io.ReadAll(s.r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return decode(b)
}

// Name implements Source.
func (s *Reader) Name() string { return "reader" }
