package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/hupe1980/flatfa/kvstore"
	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var _ kvstore.Store = (*Store)(nil)

// Store implements kvstore.Store for MinIO and S3-compatible storage.
type Store struct {
	client      *minio.Client
	bucket      string
	prefix      string
	concurrency int
	limiter     *rate.Limiter
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix places all namespaces under prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = normalizePrefix(prefix)
	}
}

// WithConcurrency bounds the parallel object fetches of Scan.
func WithConcurrency(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithWriteLimit caps puts and deletes at perSecond with the given burst.
func WithWriteLimit(perSecond float64, burst int) Option {
	return func(s *Store) {
		if perSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
		}
	}
}

// NewStore creates a new MinIO store in bucket.
func NewStore(client *minio.Client, bucket string, optFns ...Option) *Store {
	s := &Store{
		client:      client,
		bucket:      bucket,
		concurrency: 8,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return prefix
}

func (s *Store) nsPrefix(ns string) string {
	return s.prefix + ns + "/"
}

func (s *Store) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}

func isNotFound(err error) bool {
	errResp := minio.ToErrorResponse(err)
	return errResp.Code == "NoSuchKey" || errResp.Code == "NotFound"
}

// Get returns the value of key in ns.
func (s *Store) Get(ctx context.Context, ns, key string) ([]byte, error) {
	return s.get(ctx, s.nsPrefix(ns)+key)
}

func (s *Store) get(ctx context.Context, objectKey string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, kvstore.ErrNotFound
		}
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, kvstore.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Put writes key in ns.
func (s *Store) Put(ctx context.Context, ns, key string, value []byte) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, s.bucket, s.nsPrefix(ns)+key, bytes.NewReader(value), int64(len(value)), minio.PutObjectOptions{})
	return err
}

// Delete removes key from ns.
func (s *Store) Delete(ctx context.Context, ns, key string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	err := s.client.RemoveObject(ctx, s.bucket, s.nsPrefix(ns)+key, minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// Scan lists ns, fetches the matching objects concurrently and calls fn in
// key order.
func (s *Store) Scan(ctx context.Context, ns, prefix string, fn func(key string, value []byte) error) error {
	root := s.nsPrefix(ns)

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    root + prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return obj.Err
		}
		if key, ok := strings.CutPrefix(obj.Key, root); ok && key != "" {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	values := make([][]byte, len(keys))
	found := make([]bool, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, key := range keys {
		g.Go(func() error {
			v, err := s.get(gctx, root+key)
			if err != nil {
				if errors.Is(err, kvstore.ErrNotFound) {
					return nil
				}
				return err
			}
			values[i], found[i] = v, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, key := range keys {
		if !found[i] {
			continue
		}
		if err := fn(key, values[i]); err != nil {
			if errors.Is(err, kvstore.ErrStopScan) {
				return nil
			}
			return err
		}
	}
	return nil
}
