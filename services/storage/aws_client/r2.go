package aws_client

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
)

// NewR2Config points the S3 client at Cloudflare R2.
func NewR2Config(accountID, accessKeyID, accessKeySecret string) *aws.Config {
	return &aws.Config{
		Endpoint:    aws.String("https://" + accountID + ".r2.cloudflarestorage.com"),
		Region:      aws.String("auto"),
		Credentials: credentials.NewStaticCredentials(accessKeyID, accessKeySecret, ""),
		// R2 does not support virtual-hosted buckets
		S3ForcePathStyle: aws.Bool(true),
	}
}
