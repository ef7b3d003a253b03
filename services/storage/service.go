package storage

import (
	"bytes"
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/opentracing/opentracing-go"

	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/tracing"
	"github.com/velog-io/velog-api/services/storage/aws_client"
)

// ObjectStorageService implements StorageService using S3Client
type ObjectStorageService struct {
	client     aws_client.S3Client
	bucketName string
	isPublic   bool
	cdnDomain  string
}

type StorageConfig struct {
	BucketName string
	IsPublic   bool
	// CDNDomain serves public URLs when set; otherwise the bucket's S3 domain is used.
	CDNDomain string
}

func NewStorageService(client aws_client.S3Client, config StorageConfig) interfaces.StorageService {
	return &ObjectStorageService{
		client:     client,
		bucketName: config.BucketName,
		isPublic:   config.IsPublic,
		cdnDomain:  config.CDNDomain,
	}
}

func (s *ObjectStorageService) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ObjectStorageService.Upload")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("key", key, "size", len(data))

	uploadInput := s3manager.UploadInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	if s.isPublic {
		uploadInput.ACL = aws.String("public-read")
	}

	return s.client.Upload(ctx, uploadInput)
}

func (s *ObjectStorageService) PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ObjectStorageService.PresignUpload")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	return s.client.PresignPut(ctx, s.bucketName, key, contentType, ttl)
}

func (s *ObjectStorageService) Delete(ctx context.Context, key string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ObjectStorageService.Delete")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	return s.client.Delete(ctx, s.bucketName, key)
}

func (s *ObjectStorageService) GetPublicURL(key string) string {
	if s.cdnDomain != "" {
		return "https://" + s.cdnDomain + "/" + key
	}
	return "https://" + s.bucketName + ".s3.amazonaws.com/" + key
}
