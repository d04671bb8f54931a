package histload

import "io"

// Source identifies a workbook to process.
type Source struct {
	Path string

	// for test
	reader io.Reader
}
