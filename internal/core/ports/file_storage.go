package ports

import (
	"context"

	"printflow/internal/core/domain/model/kernel"
)

// FileStorage deletes files held by one external blob store.
type FileStorage interface {
	// Delete removes the object behind ref. An object that is already gone
	// counts as deleted and returns nil; any other failure returns an error.
	Delete(ctx context.Context, ref kernel.FileReference) error
}
