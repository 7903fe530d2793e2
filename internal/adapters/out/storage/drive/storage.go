// Package drive deletes order documents from Google Drive.
package drive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/ports"
	"printflow/internal/pkg/errs"

	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Storage implements ports.FileStorage for Drive share links.
type Storage struct {
	files *drivev3.FilesService
}

func New(service *drivev3.Service) *Storage {
	return &Storage{files: service.Files}
}

// NewFromCredentialsFile authenticates with a service account key file.
// Extra options are appended, which tests use to point at a local endpoint.
func NewFromCredentialsFile(ctx context.Context, path string, opts ...option.ClientOption) (*Storage, error) {
	opts = append([]option.ClientOption{
		option.WithCredentialsFile(path),
		option.WithScopes(drivev3.DriveScope),
	}, opts...)
	service, err := drivev3.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return New(service), nil
}

// Delete permanently removes the file behind ref. A file Drive no longer
// knows is treated as already deleted.
func (s *Storage) Delete(ctx context.Context, ref kernel.FileReference) error {
	id, err := ParseFileID(ref)
	if err != nil {
		return err
	}

	err = s.files.Delete(id).SupportsAllDrives(true).Context(ctx).Do()
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return nil
	}
	return fmt.Errorf("delete drive file %s: %w", id, err)
}

// Owns reports whether ref is a Google host link.
func (s *Storage) Owns(ref kernel.FileReference) bool {
	if ref.Validate() != nil {
		return false
	}
	u := ref.URL()
	return isGoogleHost(u.Hostname())
}

func isGoogleHost(host string) bool {
	host = strings.ToLower(host)
	return host == "google.com" || strings.HasSuffix(host, ".google.com")
}

// ParseFileID extracts the file id from the link shapes Drive hands out:
// /file/d/<id>/view, /document/d/<id>/edit, /open?id=<id> and /uc?id=<id>.
func ParseFileID(ref kernel.FileReference) (string, error) {
	if err := ref.Validate(); err != nil {
		return "", err
	}
	u := ref.URL()

	if !isGoogleHost(u.Hostname()) {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"drive url",
			fmt.Errorf("%s is not a google host", u.Hostname()),
		)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "d" && parts[i+1] != "" {
			return parts[i+1], nil
		}
	}

	if id := u.Query().Get("id"); id != "" {
		return id, nil
	}

	return "", errs.NewValueIsInvalidErrorWithCause(
		"drive url",
		fmt.Errorf("%s carries no file id", ref),
	)
}

var _ ports.FileStorage = (*Storage)(nil)
