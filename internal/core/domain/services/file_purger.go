package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

var ErrFilePurgerIsNotConstructed = errors.New("FilePurger must be created via NewFilePurger")

// PurgeReport is the result of deleting one file set. A role missing from
// Failures was deleted or already gone.
type PurgeReport struct {
	Deleted  []order.FileRole
	Failures map[order.FileRole]error
}

// AllDeleted reports whether every file of the set is gone.
func (r PurgeReport) AllDeleted() bool {
	return len(r.Failures) == 0
}

// FailedRoles returns the failing roles in role order.
func (r PurgeReport) FailedRoles() []order.FileRole {
	var roles []order.FileRole
	for _, role := range order.FileRoles() {
		if _, ok := r.Failures[role]; ok {
			roles = append(roles, role)
		}
	}
	return roles
}

// Err joins the failures, or returns nil.
func (r PurgeReport) Err() error {
	errList := make([]error, 0, len(r.Failures))
	for _, role := range r.FailedRoles() {
		errList = append(errList, fmt.Errorf("%s: %w", role, r.Failures[role]))
	}
	return errors.Join(errList...)
}

// FilePurger routes each file of a set to the store that holds it: the
// document store for Document, the image CDN for both covers.
//
// Example usage:
//
//	purger := NewFilePurger(driveStorage, cloudinaryStorage)
//	report := purger.Purge(ctx, o.Files())
//	if !report.AllDeleted() {
//	    // leave the order untouched, report.FailedRoles() for the log
//	}
type FilePurger struct {
	documents ports.FileStorage
	images    ports.FileStorage
}

func NewFilePurger(documents, images ports.FileStorage) (*FilePurger, error) {
	if documents == nil {
		return nil, fmt.Errorf("%w: document storage is nil", ErrFilePurgerIsNotConstructed)
	}
	if images == nil {
		return nil, fmt.Errorf("%w: image storage is nil", ErrFilePurgerIsNotConstructed)
	}
	return &FilePurger{documents: documents, images: images}, nil
}

// Purge deletes every file of set concurrently and waits for all of them. A
// failing delete does not cancel the others, so the report is complete. An
// empty set yields an empty report.
func (p *FilePurger) Purge(ctx context.Context, set order.FileSet) PurgeReport {
	report := PurgeReport{Failures: map[order.FileRole]error{}}
	files := set.Files()
	if len(files) == 0 {
		return report
	}

	var mu sync.Mutex
	var g errgroup.Group
	for _, file := range files {
		g.Go(func() error {
			err := p.storageFor(file.Role).Delete(ctx, file.Reference)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failures[file.Role] = err
				return nil
			}
			report.Deleted = append(report.Deleted, file.Role)
			return nil
		})
	}
	_ = g.Wait()

	slices.Sort(report.Deleted)
	return report
}

func (p *FilePurger) storageFor(role order.FileRole) ports.FileStorage {
	if role == order.Document {
		return p.documents
	}
	return p.images
}
