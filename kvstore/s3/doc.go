// Package s3 implements kvstore.Store on Amazon S3.
//
// Every entry is one object at <prefix>/<ns>/<key>. Values are tiny, so
// Scan lists the namespace and fetches objects with bounded concurrency.
package s3
