package kernel

import (
	"fmt"
	"net/url"
	"strings"

	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"
)

var ErrFileReferenceIsNotConstructed = errs.NewValueIsRequiredError(
	"file reference must be created via NewFileReference")

// FileReference is the URL of a file held by an external blob store. The
// domain treats it as opaque; only storage adapters look inside.
type FileReference struct {
	raw   string
	url   *url.URL
	guard guard.ConstructorGuard
}

// NewFileReference accepts absolute http or https URLs.
func NewFileReference(raw string) (FileReference, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return FileReference{}, errs.NewValueIsRequiredError("file reference")
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return FileReference{}, errs.NewValueIsInvalidErrorWithCause("file reference", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return FileReference{}, errs.NewValueIsInvalidErrorWithCause(
			"file reference",
			fmt.Errorf("scheme %q is not supported", parsed.Scheme),
		)
	}
	if parsed.Host == "" {
		return FileReference{}, errs.NewValueIsInvalidErrorWithCause("file reference", fmt.Errorf("host is missing"))
	}
	return FileReference{raw: value, url: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (f FileReference) String() string {
	return f.raw
}

// URL returns a copy of the parsed reference.
func (f FileReference) URL() url.URL {
	if f.url == nil {
		return url.URL{}
	}
	return *f.url
}

func (f FileReference) IsEqual(other FileReference) bool {
	return f.raw == other.raw
}

func (f FileReference) Validate() error {
	return f.guard.Validate(ErrFileReferenceIsNotConstructed)
}
