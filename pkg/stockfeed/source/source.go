// Package source loads the ticker symbols the refresh pipeline operates on.
package source

import (
	"context"
	"fmt"
)

// Source produces an ordered sequence of ticker symbols. Order is preserved
// as found; no deduplication is performed.
type Source interface {
	Load(ctx context.Context) ([]string, error)
}

// NotFoundError indicates the ticker resource does not exist. It is fatal
// for the whole run.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ticker source %q does not exist", e.Path)
}

// EmptyResourceError indicates the ticker resource exists but contains no
// data. It is fatal for the whole run.
type EmptyResourceError struct {
	Path string
}

func (e *EmptyResourceError) Error() string {
	return fmt.Sprintf("ticker source %q is empty", e.Path)
}
