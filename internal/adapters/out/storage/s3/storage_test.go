package s3_test

import (
	"context"
	"errors"
	"testing"

	"printflow/internal/adapters/out/storage/s3"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	bucket = "printflow-orders"
	region = "ap-southeast-1"
)

type MockObjectDeleter struct {
	mock.Mock
}

func (m *MockObjectDeleter) DeleteObject(
	ctx context.Context,
	params *awss3.DeleteObjectInput,
	_ ...func(*awss3.Options),
) (*awss3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*awss3.DeleteObjectOutput)
	return out, args.Error(1)
}

func mustRef(t *testing.T, raw string) kernel.FileReference {
	t.Helper()
	ref, err := kernel.NewFileReference(raw)
	require.NoError(t, err)
	return ref
}

func newStorage(t *testing.T, client s3.ObjectDeleter) *s3.Storage {
	t.Helper()
	storage, err := s3.New(client, bucket, region)
	require.NoError(t, err)
	return storage
}

func objectInput(key string) any {
	return mock.MatchedBy(func(in *awss3.DeleteObjectInput) bool {
		return in.Bucket != nil && *in.Bucket == bucket && in.Key != nil && *in.Key == key
	})
}

func TestNew_RequiresSettings(t *testing.T) {
	client := new(MockObjectDeleter)

	_, err := s3.New(nil, bucket, region)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	_, err = s3.New(client, "", region)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	_, err = s3.New(client, bucket, "")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestStorage_ParseKey(t *testing.T) {
	storage := newStorage(t, new(MockObjectDeleter))
	tests := map[string]string{
		"https://printflow-orders.s3.ap-southeast-1.amazonaws.com/documents/PF-1.pdf": "documents/PF-1.pdf",
		"https://printflow-orders.s3.amazonaws.com/1718000000-cover.png":              "1718000000-cover.png",
		"https://PRINTFLOW-ORDERS.s3.ap-southeast-1.amazonaws.com/a%20b.pdf":          "a b.pdf",
	}

	for raw, want := range tests {
		key, err := storage.ParseKey(mustRef(t, raw))
		require.NoError(t, err, raw)
		assert.Equal(t, want, key, raw)
	}
}

func TestStorage_ParseKey_Invalid(t *testing.T) {
	storage := newStorage(t, new(MockObjectDeleter))

	for _, raw := range []string{
		"https://printflow-orders.s3.ap-southeast-1.amazonaws.com/",
		"https://other-bucket.s3.ap-southeast-1.amazonaws.com/doc.pdf",
		"https://printflow-orders.s3.eu-west-1.amazonaws.com/doc.pdf",
		"https://drive.google.com/file/d/1AbCdEf/view",
	} {
		_, err := storage.ParseKey(mustRef(t, raw))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
	}
}

func TestStorage_Owns(t *testing.T) {
	storage := newStorage(t, new(MockObjectDeleter))

	assert.True(t, storage.Owns(mustRef(t, "https://printflow-orders.s3.ap-southeast-1.amazonaws.com/doc.pdf")))
	assert.False(t, storage.Owns(mustRef(t, "https://drive.google.com/file/d/1AbCdEf/view")))
	assert.False(t, storage.Owns(kernel.FileReference{}))
}

func TestStorage_Delete(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "deleted"},
		{name: "no such key", err: &types.NoSuchKey{}},
		{name: "not found code", err: &smithy.GenericAPIError{Code: "NotFound"}},
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, wantErr: true},
		{name: "transport", err: errors.New("connection reset"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockObjectDeleter)
			client.On("DeleteObject", mock.Anything, objectInput("documents/PF-1.pdf")).
				Return(&awss3.DeleteObjectOutput{}, tt.err).Once()

			err := newStorage(t, client).Delete(t.Context(),
				mustRef(t, "https://printflow-orders.s3.ap-southeast-1.amazonaws.com/documents/PF-1.pdf"))

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorContains(t, err, "documents/PF-1.pdf")
			} else {
				assert.NoError(t, err)
			}
			client.AssertExpectations(t)
		})
	}
}

func TestStorage_Delete_ForeignURLNeverCallsAPI(t *testing.T) {
	client := new(MockObjectDeleter)

	err := newStorage(t, client).Delete(t.Context(), mustRef(t, "https://drive.google.com/file/d/1AbCdEf/view"))

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	client.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
}
