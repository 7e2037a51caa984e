package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

type BlobType string

const (
	// BlobLocal stores document content on the local/shared filesystem.
	BlobLocal BlobType = "local"
	// BlobS3 stores document content in an S3-compatible object store.
	BlobS3 BlobType = "s3"
)

const (
	DefaultBlobType = BlobLocal
	DefaultBlobRoot = "media"

	DefaultS3Endpoint        = "localhost:9000"
	DefaultS3AccessKeyID     = "minioadmin"
	DefaultS3SecretAccessKey = "minioadmin"
	DefaultS3UseSSL          = false
	DefaultS3BucketName      = "repositorio65"
	DefaultS3Region          = "us-east-1"
)

// BlobConfig selects and configures the binary content backend.
// The relational database remains the source of truth for versioning state;
// the blob backend only holds file bytes.
type BlobConfig struct {
	Type BlobType `mapstructure:"type" rule:"oneof=local s3"`
	// Root is the base directory for the local backend.
	Root string   `mapstructure:"root"`
	S3   S3Config `mapstructure:"s3"`
}

// S3Config holds MinIO/S3 connection settings.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
	Region          string `mapstructure:"region"`
}

// GetEndpointURL returns the full endpoint URL including scheme.
func (c *S3Config) GetEndpointURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, c.Endpoint)
}

func (c *BlobConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("blob.type", DefaultBlobType)
	v.SetDefault("blob.root", DefaultBlobRoot)

	v.SetDefault("blob.s3.endpoint", DefaultS3Endpoint)
	v.SetDefault("blob.s3.access_key_id", DefaultS3AccessKeyID)
	v.SetDefault("blob.s3.secret_access_key", DefaultS3SecretAccessKey)
	v.SetDefault("blob.s3.use_ssl", DefaultS3UseSSL)
	v.SetDefault("blob.s3.bucket_name", DefaultS3BucketName)
	v.SetDefault("blob.s3.region", DefaultS3Region)
}
