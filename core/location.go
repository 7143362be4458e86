package core

// DefaultBucketName is the bucket used when callers do not specify one.
const DefaultBucketName = "s3os"

// BucketLocation identifies an object store bucket. It is an immutable
// value type and is compared by value.
type BucketLocation struct {
	// Name is the bucket name.
	Name string

	// Region is the region the bucket lives in. Empty means the store's
	// default region.
	Region string
}

// DefaultBucket returns the location of the default bucket.
func DefaultBucket() BucketLocation {
	return BucketLocation{Name: DefaultBucketName}
}

// ObjectLocation identifies a single object within a bucket. It is an
// immutable value type and is compared by value.
type ObjectLocation struct {
	// Key is the full object key within the bucket.
	Key string

	// Bucket is the bucket holding the object.
	Bucket BucketLocation
}

// NewObjectLocation returns a location for the given key in the default
// bucket.
func NewObjectLocation(key string) ObjectLocation {
	return ObjectLocation{Key: key, Bucket: DefaultBucket()}
}
