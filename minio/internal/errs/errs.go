// Package errs provides error handling utilities for the minio object
// store.
package errs

import (
	"fmt"

	"github.com/minio/minio-go/v7"

	"github.com/MartinHowarth/s3os/core"
)

// Translate converts MinIO errors to s3os sentinel errors.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	// Check MinIO error responses
	errResp := minio.ToErrorResponse(err)

	switch errResp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return core.ErrNotExist
	}

	// Return wrapped error with context for other errors
	return fmt.Errorf("minio: %w", err)
}
