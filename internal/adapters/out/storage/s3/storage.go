// Package s3 deletes order documents from an S3 bucket.
package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/ports"
	"printflow/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// ObjectDeleter is the part of the S3 client the storage needs.
type ObjectDeleter interface {
	DeleteObject(ctx context.Context, params *awss3.DeleteObjectInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
}

// Storage implements ports.FileStorage for virtual-hosted object URLs of one
// bucket: https://<bucket>.s3.<region>.amazonaws.com/<key>.
type Storage struct {
	client ObjectDeleter
	bucket string
	region string
}

func New(client ObjectDeleter, bucket, region string) (*Storage, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("s3 client")
	}
	if bucket == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}
	if region == "" {
		return nil, errs.NewValueIsRequiredError("region")
	}
	return &Storage{client: client, bucket: bucket, region: region}, nil
}

// NewFromConfig builds a client for region. Static keys are used when both are
// set; otherwise credentials come from the default AWS chain.
func NewFromConfig(ctx context.Context, bucket, region, accessKey, secretKey string) (*Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return New(awss3.NewFromConfig(cfg), bucket, region)
}

// Owns reports whether ref points into this storage's bucket.
func (s *Storage) Owns(ref kernel.FileReference) bool {
	if ref.Validate() != nil {
		return false
	}
	u := ref.URL()
	return s.ownsHost(u.Hostname())
}

func (s *Storage) ownsHost(host string) bool {
	host = strings.ToLower(host)
	bucket := strings.ToLower(s.bucket)
	return host == bucket+".s3."+strings.ToLower(s.region)+".amazonaws.com" ||
		host == bucket+".s3.amazonaws.com"
}

// Delete removes the object behind ref. A key S3 reports as missing is treated
// as already deleted.
func (s *Storage) Delete(ctx context.Context, ref kernel.FileReference) error {
	key, err := s.ParseKey(ref)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil || isMissing(err) {
		return nil
	}
	return fmt.Errorf("delete s3 object %s: %w", key, err)
}

// ParseKey returns the object key of ref, which must name this bucket.
func (s *Storage) ParseKey(ref kernel.FileReference) (string, error) {
	if err := ref.Validate(); err != nil {
		return "", err
	}
	u := ref.URL()

	if !s.ownsHost(u.Hostname()) {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"s3 url",
			fmt.Errorf("%s is not bucket %s in %s", u.Hostname(), s.bucket, s.region),
		)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"s3 url",
			fmt.Errorf("%s carries no object key", ref),
		)
	}
	return key, nil
}

func isMissing(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

var _ ports.FileStorage = (*Storage)(nil)
