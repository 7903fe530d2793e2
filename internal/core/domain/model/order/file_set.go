package order

import (
	"errors"
	"fmt"
	"strings"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
)

// FileRole names one slot of a FileSet.
type FileRole int

const (
	UnknownRole FileRole = iota
	// Document is the print-ready PDF, held by the document store.
	Document
	// FrontCover and BackCover are cover images, held by the image CDN.
	FrontCover
	BackCover
)

func getFileRoleStrings() map[FileRole]string {
	//nolint:exhaustive // UnknownRole has no name
	return map[FileRole]string{
		Document:   "document",
		FrontCover: "front_cover",
		BackCover:  "back_cover",
	}
}

// FileRoles lists the roles of a complete set.
func FileRoles() []FileRole {
	return []FileRole{Document, FrontCover, BackCover}
}

func (r FileRole) String() string {
	if str, ok := getFileRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// StoredFile is one reference of a FileSet with its role.
type StoredFile struct {
	Role      FileRole
	Reference kernel.FileReference
}

// FileSet is the document plus the two cover images of an order. It is either
// complete or empty; the zero value is the empty set.
type FileSet struct {
	document   kernel.FileReference
	frontCover kernel.FileReference
	backCover  kernel.FileReference
	present    bool
}

// NewFileSet builds a complete set.
func NewFileSet(document, frontCover, backCover kernel.FileReference) (FileSet, error) {
	if err := errors.Join(
		document.Validate(),
		frontCover.Validate(),
		backCover.Validate(),
	); err != nil {
		return FileSet{}, err
	}
	return FileSet{document: document, frontCover: frontCover, backCover: backCover, present: true}, nil
}

// EmptyFileSet returns the set of an order whose files were cleaned up.
func EmptyFileSet() FileSet {
	return FileSet{}
}

// ParseFileSet builds a set from raw URLs. All three blank yields the empty
// set; a mix of blank and non-blank is rejected.
func ParseFileSet(document, frontCover, backCover string) (FileSet, error) {
	raws := []string{document, frontCover, backCover}
	blank := 0
	for _, raw := range raws {
		if strings.TrimSpace(raw) == "" {
			blank++
		}
	}
	switch blank {
	case len(raws):
		return EmptyFileSet(), nil
	case 0:
	default:
		return FileSet{}, errs.NewValueIsInvalidErrorWithCause(
			"file set",
			fmt.Errorf("%d of %d file references are missing", blank, len(raws)),
		)
	}

	refs := make([]kernel.FileReference, len(raws))
	for i, raw := range raws {
		ref, err := kernel.NewFileReference(raw)
		if err != nil {
			return FileSet{}, fmt.Errorf("%s: %w", FileRoles()[i], err)
		}
		refs[i] = ref
	}
	return NewFileSet(refs[0], refs[1], refs[2])
}

func (f FileSet) IsEmpty() bool {
	return !f.present
}

// Reference returns the reference held for role.
func (f FileSet) Reference(role FileRole) (kernel.FileReference, bool) {
	if !f.present {
		return kernel.FileReference{}, false
	}
	switch role {
	case Document:
		return f.document, true
	case FrontCover:
		return f.frontCover, true
	case BackCover:
		return f.backCover, true
	default:
		return kernel.FileReference{}, false
	}
}

// Files returns every reference in role order; nil for the empty set.
func (f FileSet) Files() []StoredFile {
	if !f.present {
		return nil
	}
	files := make([]StoredFile, 0, len(FileRoles()))
	for _, role := range FileRoles() {
		ref, _ := f.Reference(role)
		files = append(files, StoredFile{Role: role, Reference: ref})
	}
	return files
}

func (f FileSet) IsEqual(other FileSet) bool {
	if f.present != other.present {
		return false
	}
	return f.document.IsEqual(other.document) &&
		f.frontCover.IsEqual(other.frontCover) &&
		f.backCover.IsEqual(other.backCover)
}
