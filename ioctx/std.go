package ioctx

import (
	"context"
	"io"
)

type fromStdReaderAt struct{ io.ReaderAt }

// FromStdReaderAt wraps io.ReaderAt as ReaderAt.
func FromStdReaderAt(r io.ReaderAt) ReaderAt { return fromStdReaderAt{r} }

func (r fromStdReaderAt) ReadAt(_ context.Context, dst []byte, off int64) (n int, err error) {
	return r.ReaderAt.ReadAt(dst, off)
}
