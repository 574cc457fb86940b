package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/flatfa/kvstore"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Client is the subset of the S3 API the store uses. It is satisfied by
// *s3.Client and by manager.UploadAPIClient implementations.
type Client interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

var _ kvstore.Store = (*Store)(nil)

// Store implements kvstore.Store for S3.
type Store struct {
	client      Client
	uploader    *manager.Uploader
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
		prefix = strings.Trim(prefix, "/")
		if prefix != "" {
			prefix += "/"
		}
		s.prefix = prefix
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

// NewStore creates a new S3 store in bucket.
func NewStore(client Client, bucket string, optFns ...Option) *Store {
	s := &Store{
		client:      client,
		uploader:    manager.NewUploader(client),
		bucket:      bucket,
		concurrency: 8,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// NewFromConfig creates a store with a client built from cfg.
func NewFromConfig(cfg aws.Config, bucket string, optFns ...Option) *Store {
	return NewStore(s3.NewFromConfig(cfg), bucket, optFns...)
}

func (s *Store) nsPrefix(ns string) string {
	return s.prefix + ns + "/"
}

func (s *Store) key(ns, key string) string {
	return s.nsPrefix(ns) + key
}

func (s *Store) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	return errors.As(err, &nsk)
}

// Get returns the value of key in ns.
func (s *Store) Get(ctx context.Context, ns, key string) ([]byte, error) {
	return s.get(ctx, s.key(ns, key))
}

func (s *Store) get(ctx context.Context, objectKey string) ([]byte, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, kvstore.ErrNotFound
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return io.ReadAll(resp.Body)
}

// Put uploads key in ns.
func (s *Store) Put(ctx context.Context, ns, key string, value []byte) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(ns, key)),
		Body:   bytes.NewReader(value),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// Delete removes key from ns.
func (s *Store) Delete(ctx context.Context, ns, key string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(ns, key)),
	})
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
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(root + prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, obj := range page.Contents {
			if key, ok := strings.CutPrefix(aws.ToString(obj.Key), root); ok {
				keys = append(keys, key)
			}
		}
	}
	slices.Sort(keys)

	values := make([][]byte, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, key := range keys {
		g.Go(func() error {
			v, err := s.get(gctx, root+key)
			if err != nil {
				if errors.Is(err, kvstore.ErrNotFound) {
					// Deleted between list and get.
					return nil
				}
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, key := range keys {
		if values[i] == nil {
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
