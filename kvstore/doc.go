// Package kvstore persists a flatten index in an external key-value store.
//
// A Store is a namespaced byte map. IndexStore lays an index out on top of
// it so that several processes, or several hosts sharing a data volume, can
// reuse one build:
//
//	ns   = <basename>-<xxh3(abs path) hex>
//	idx/<header>  16 bytes, big-endian start then stop
//	meta/commit   8 bytes, big-endian unix nanoseconds of the build
//
// The commit marker plays the role of an index file's modification time.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and single-process use
//   - dynamodb.Store: one item per key (partition key ns, sort key k)
//   - s3.Store: one object per key under <prefix>/<ns>/
//   - minio.Store: one object per key under <prefix>/<ns>/, S3 compatible servers
package kvstore
