// Package routing sends each file reference to the backend that owns its host.
package routing

import (
	"context"
	"fmt"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/ports"
	"printflow/internal/pkg/errs"
)

// Route pairs a backend with the references it accepts.
type Route struct {
	Name    string
	Owns    func(ref kernel.FileReference) bool
	Storage ports.FileStorage
}

// Storage implements ports.FileStorage over several backends. Routes are
// tried in order and the first owner wins.
type Storage struct {
	routes []Route
}

func New(routes ...Route) (*Storage, error) {
	if len(routes) == 0 {
		return nil, errs.NewValueIsRequiredError("routes")
	}
	for _, r := range routes {
		if r.Owns == nil || r.Storage == nil {
			return nil, errs.NewValueIsRequiredError("route " + r.Name)
		}
	}
	return &Storage{routes: routes}, nil
}

// Delete forwards to the owning backend. A reference no backend owns is
// rejected without any call.
func (s *Storage) Delete(ctx context.Context, ref kernel.FileReference) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	for _, r := range s.routes {
		if r.Owns(ref) {
			return r.Storage.Delete(ctx, ref)
		}
	}
	u := ref.URL()
	return errs.NewValueIsInvalidErrorWithCause(
		"file reference",
		fmt.Errorf("no storage configured for host %s", u.Hostname()),
	)
}

var _ ports.FileStorage = (*Storage)(nil)
