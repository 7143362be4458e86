// Package minio provides a MinIO/S3-compatible implementation of the
// core.ObjectStore interface.
package minio

import (
	"fmt"

	"github.com/minio/minio-go/v7"

	"github.com/MartinHowarth/s3os/core"
)

// Config holds MinIO object store configuration.
type Config struct {
	// Endpoint is the MinIO server URL (e.g., "localhost:9000")
	Endpoint string

	// AccessKey is the access key ID for authentication
	AccessKey string

	// SecretKey is the secret access key for authentication
	SecretKey string

	// UseSSL enables HTTPS connections
	UseSSL bool

	// Client is an optional pre-configured MinIO client
	// If provided, Endpoint/AccessKey/SecretKey are ignored
	Client *minio.Client
}

// validate checks if the configuration is valid.
// Either Client OR (Endpoint + AccessKey + SecretKey) must be provided.
func (c *Config) validate() error {
	// If Client is provided, we're done (other fields are ignored)
	if c.Client != nil {
		return nil
	}

	if c.Endpoint == "" {
		return fmt.Errorf("%w: endpoint is required when client is not provided", core.ErrInvalidConfig)
	}
	if c.AccessKey == "" {
		return fmt.Errorf("%w: access key is required when client is not provided", core.ErrInvalidConfig)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("%w: secret key is required when client is not provided", core.ErrInvalidConfig)
	}

	return nil
}
