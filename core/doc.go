// Package core defines the value types, interfaces, and sentinel errors
// shared by the s3os packages.
//
// The two interfaces split the external collaborators of the library:
// ObjectStore is the remote bucket/key store (implemented by package
// minio), and Codec is the value serialization format (implemented by
// package codec). Everything above them is written purely against these
// contracts, so tests can substitute the in-memory storetest fake.
package core
