// Package storage wraps the S3-compatible object store (MinIO) holding
// database backups.
//
// Client is the narrow interface the features depend on; NewClient builds the
// MinIO implementation with strict transport timeouts. PutJSON and ListKeys
// are the helpers the backup and integrity features share. A testify mock
// lives in storage/mocks.
package storage
