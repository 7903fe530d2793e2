package routing_test

import (
	"context"
	"strings"
	"testing"

	"printflow/internal/adapters/out/storage/routing"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Delete(ctx context.Context, ref kernel.FileReference) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func hostSuffix(suffix string) func(kernel.FileReference) bool {
	return func(ref kernel.FileReference) bool {
		u := ref.URL()
		return strings.HasSuffix(u.Hostname(), suffix)
	}
}

func mustRef(t *testing.T, raw string) kernel.FileReference {
	t.Helper()
	ref, err := kernel.NewFileReference(raw)
	require.NoError(t, err)
	return ref
}

func TestStorage_Delete_RoutesByHost(t *testing.T) {
	bucket := new(MockFileStorage)
	drive := new(MockFileStorage)
	storage, err := routing.New(
		routing.Route{Name: "s3", Owns: hostSuffix(".amazonaws.com"), Storage: bucket},
		routing.Route{Name: "google_drive", Owns: hostSuffix(".google.com"), Storage: drive},
	)
	require.NoError(t, err)

	doc := mustRef(t, "https://printflow.s3.ap-southeast-1.amazonaws.com/doc.pdf")
	link := mustRef(t, "https://drive.google.com/file/d/1AbCdEf/view")
	bucket.On("Delete", mock.Anything, doc).Return(nil).Once()
	drive.On("Delete", mock.Anything, link).Return(nil).Once()

	require.NoError(t, storage.Delete(t.Context(), doc))
	require.NoError(t, storage.Delete(t.Context(), link))

	bucket.AssertExpectations(t)
	drive.AssertExpectations(t)
}

func TestStorage_Delete_UnknownHost(t *testing.T) {
	bucket := new(MockFileStorage)
	storage, err := routing.New(routing.Route{Name: "s3", Owns: hostSuffix(".amazonaws.com"), Storage: bucket})
	require.NoError(t, err)

	err = storage.Delete(t.Context(), mustRef(t, "https://drive.google.com/file/d/1AbCdEf/view"))

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorContains(t, err, "drive.google.com")
	bucket.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestStorage_Delete_PropagatesBackendError(t *testing.T) {
	bucket := new(MockFileStorage)
	storage, err := routing.New(routing.Route{Name: "s3", Owns: hostSuffix(".amazonaws.com"), Storage: bucket})
	require.NoError(t, err)
	doc := mustRef(t, "https://printflow.s3.amazonaws.com/doc.pdf")
	bucket.On("Delete", mock.Anything, doc).Return(assert.AnError).Once()

	assert.ErrorIs(t, storage.Delete(t.Context(), doc), assert.AnError)
}

func TestStorage_Delete_RejectsZeroReference(t *testing.T) {
	storage, err := routing.New(routing.Route{Name: "s3", Owns: hostSuffix(".amazonaws.com"), Storage: new(MockFileStorage)})
	require.NoError(t, err)

	assert.ErrorIs(t, storage.Delete(t.Context(), kernel.FileReference{}), kernel.ErrFileReferenceIsNotConstructed)
}

func TestNew_RequiresRoutes(t *testing.T) {
	_, err := routing.New()
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = routing.New(routing.Route{Name: "s3", Storage: new(MockFileStorage)})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
