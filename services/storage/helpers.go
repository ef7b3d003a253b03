package storage

import (
	"github.com/pkg/errors"

	"github.com/velog-io/velog-api/config"
	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/services/storage/aws_client"
)

// NewStorageServiceFromConfig builds an S3 or R2 backed StorageService for the image bucket.
func NewStorageServiceFromConfig(cfg *config.StorageConfig) (interfaces.StorageService, error) {
	var client aws_client.S3Client
	var err error

	switch cfg.Provider {
	case "", "s3":
		client, err = aws_client.NewS3Client(aws_client.NewS3Config(cfg.Region, cfg.AccessKeyID, cfg.AccessKeySecret))
	case "r2":
		if cfg.AccountID == "" {
			return nil, errors.New("CLOUDFLARE_R2_ACCOUNT_ID is required for the r2 storage provider")
		}
		client, err = aws_client.NewS3Client(aws_client.NewR2Config(cfg.AccountID, cfg.AccessKeyID, cfg.AccessKeySecret))
	default:
		return nil, errors.Errorf("unknown storage provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create object storage client")
	}

	return NewStorageService(client, StorageConfig{
		BucketName: cfg.ImageBucket,
		IsPublic:   cfg.Provider != "r2",
		CDNDomain:  cfg.CDNDomain,
	}), nil
}
