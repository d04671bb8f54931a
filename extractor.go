package histload

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

// Extractor opens a source workbook and returns a reader over its bytes.
type Extractor interface {
	Extract(context.Context, Source) (io.Reader, func(), error)
}

type fileExtractor struct{}

// NewFileExtractor returns an Extractor reading workbooks from the local
// filesystem. A missing file is a fatal error; nothing is retried.
func NewFileExtractor() Extractor {
	return &fileExtractor{}
}

func (e *fileExtractor) Extract(ctx context.Context, src Source) (io.Reader, func(), error) {
	l := log.Ctx(ctx)

	if src.reader != nil {
		return src.reader, func() {}, nil
	}

	if src.Path == "" {
		return nil, nil, xerrors.New("workbook path is empty")
	}

	f, err := os.Open(src.Path)
	if err != nil {
		l.Error().Msg(fmt.Sprintf("failed to open workbook: %v", err))
		return nil, nil, xerrors.Errorf("failed to open workbook %s: %w", src.Path, err)
	}

	return f, func() { f.Close() }, nil
}
