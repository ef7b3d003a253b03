package aws_client

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/opentracing/opentracing-go"

	"github.com/velog-io/velog-api/internal/tracing"
)

type S3Client interface {
	Upload(ctx context.Context, uploadContainer s3manager.UploadInput) error
	PresignPut(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

type s3Client struct {
	Uploader *s3manager.Uploader
	S3       *s3.S3
	Config   *aws.Config
	Session  *session.Session
}

func NewS3Config(region, accessKeyID, accessKeySecret string) *aws.Config {
	return &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKeyID, accessKeySecret, ""),
	}
}

func NewS3Client(config *aws.Config) (S3Client, error) {
	s, err := session.NewSession(config)
	if err != nil {
		return nil, err
	}
	return &s3Client{
		Uploader: s3manager.NewUploader(s),
		S3:       s3.New(s),
		Config:   config,
		Session:  s,
	}, nil
}

func (s *s3Client) Upload(ctx context.Context, uploadContainer s3manager.UploadInput) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "s3Client.Upload")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	_, err := s.Uploader.UploadWithContext(ctx, &uploadContainer)
	if err != nil {
		tracing.TraceErr(span, err)
	}
	return err
}

// PresignPut returns a URL the client can PUT the object to until ttl elapses.
func (s *s3Client) PresignPut(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "s3Client.PresignPut")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("key", key)

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	req, _ := s.S3.PutObjectRequest(input)
	req.SetContext(ctx)
	url, err := req.Presign(ttl)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	return url, nil
}

func (s *s3Client) Delete(ctx context.Context, bucket, key string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "s3Client.Delete")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	_, err := s.S3.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		tracing.TraceErr(span, err)
	}
	return err
}
