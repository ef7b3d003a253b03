package storage

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/velog-io/velog-api/config"
	"github.com/velog-io/velog-api/services/storage/aws_client"
)

type mockS3Client struct {
	mock.Mock
}

func (m *mockS3Client) Upload(ctx context.Context, uploadContainer s3manager.UploadInput) error {
	args := m.Called(ctx, uploadContainer)
	return args.Error(0)
}

func (m *mockS3Client) PresignPut(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, contentType, ttl)
	return args.String(0), args.Error(1)
}

func (m *mockS3Client) Delete(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func TestUpload(t *testing.T) {
	client := new(mockS3Client)
	service := NewStorageService(client, StorageConfig{BucketName: "images", IsPublic: true})

	client.On("Upload", mock.Anything, mock.MatchedBy(func(input s3manager.UploadInput) bool {
		body, ok := input.Body.(*bytes.Reader)
		return ok && body.Size() == int64(len("png-bytes")) && aws.StringValue(input.Bucket) == "images" &&
			aws.StringValue(input.Key) == "images/velopert/post/1/a.png" &&
			aws.StringValue(input.ContentType) == "image/png" &&
			aws.StringValue(input.ACL) == "public-read"
	})).Return(nil).Once()

	err := service.Upload(context.Background(), "images/velopert/post/1/a.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestPresignUploadAndDelete(t *testing.T) {
	client := new(mockS3Client)
	service := NewStorageService(client, StorageConfig{BucketName: "images"})

	client.On("PresignPut", mock.Anything, "images", "key", "image/png", 15*time.Minute).
		Return("https://signed.example/key", nil).Once()
	client.On("Delete", mock.Anything, "images", "key").Return(nil).Once()

	url, err := service.PresignUpload(context.Background(), "key", "image/png", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/key", url)

	require.NoError(t, service.Delete(context.Background(), "key"))
	client.AssertExpectations(t)
}

func TestGetPublicURL(t *testing.T) {
	withCDN := NewStorageService(new(mockS3Client), StorageConfig{BucketName: "images", CDNDomain: "images.velog.io"})
	assert.Equal(t, "https://images.velog.io/a/b.png", withCDN.GetPublicURL("a/b.png"))

	withoutCDN := NewStorageService(new(mockS3Client), StorageConfig{BucketName: "images"})
	assert.Equal(t, "https://images.s3.amazonaws.com/a/b.png", withoutCDN.GetPublicURL("a/b.png"))
}

func TestPresignPut_SignsLocally(t *testing.T) {
	client, err := aws_client.NewS3Client(aws_client.NewS3Config("ap-northeast-2", "AKIDEXAMPLE", "secret"))
	require.NoError(t, err)

	url, err := client.PresignPut(context.Background(), "velog-images", "images/velopert/post/abc/a.png", "image/png", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "velog-images")
	assert.Contains(t, url, "images/velopert/post/abc/a.png")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestNewStorageServiceFromConfig(t *testing.T) {
	service, err := NewStorageServiceFromConfig(&config.StorageConfig{
		Provider:    "s3",
		Region:      "ap-northeast-2",
		AccessKeyID: "key",
		ImageBucket: "images.velog.io",
		CDNDomain:   "images.velog.io",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(service.GetPublicURL("x"), "https://images.velog.io/"))

	_, err = NewStorageServiceFromConfig(&config.StorageConfig{Provider: "r2"})
	assert.Error(t, err)

	_, err = NewStorageServiceFromConfig(&config.StorageConfig{Provider: "gcs"})
	assert.Error(t, err)

	service, err = NewStorageServiceFromConfig(&config.StorageConfig{Provider: "r2", AccountID: "acct", ImageBucket: "images"})
	require.NoError(t, err)
	assert.NotNil(t, service)
}
