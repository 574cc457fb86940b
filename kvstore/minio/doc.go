// Package minio implements kvstore.Store for MinIO and other S3 compatible
// object stores, one object per key at <prefix>/<ns>/<key>.
package minio
