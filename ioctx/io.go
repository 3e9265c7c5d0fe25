// ioctx adds context.Context to io APIs.
package ioctx

import "context"

// ReaderAt is io.ReaderAt with context added.
type ReaderAt interface {
	ReadAt(_ context.Context, dst []byte, off int64) (n int, err error)
}
