package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/flatfa/kvstore"
	"golang.org/x/time/rate"
)

const (
	attrNamespace = "ns"
	attrKey       = "k"
	attrValue     = "v"
)

// Client is the interface for DynamoDB operations.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

var _ kvstore.Store = (*Store)(nil)

// Store implements kvstore.Store on a DynamoDB table.
type Store struct {
	client  Client
	table   string
	limiter *rate.Limiter
}

// Option configures a Store.
type Option func(*Store)

// WithWriteLimit caps puts and deletes at perSecond with the given burst,
// keeping large index builds under the table's provisioned write capacity.
func WithWriteLimit(perSecond float64, burst int) Option {
	return func(s *Store) {
		if perSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
		}
	}
}

// NewStore creates a new DynamoDB store on table.
func NewStore(client Client, table string, optFns ...Option) *Store {
	s := &Store{
		client: client,
		table:  table,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// NewFromConfig creates a store with a client built from cfg.
func NewFromConfig(cfg aws.Config, table string, optFns ...Option) *Store {
	return NewStore(dynamodb.NewFromConfig(cfg), table, optFns...)
}

func (s *Store) itemKey(ns, key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrNamespace: &types.AttributeValueMemberS{Value: ns},
		attrKey:       &types.AttributeValueMemberS{Value: key},
	}
}

func (s *Store) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}

// Get returns the value of key in ns.
func (s *Store) Get(ctx context.Context, ns, key string) ([]byte, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.itemKey(ns, key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if errors.As(err, &rnf) {
			return nil, fmt.Errorf("table %s: %w", s.table, err)
		}
		return nil, fmt.Errorf("failed to get item from DynamoDB: %w", err)
	}
	if len(resp.Item) == 0 {
		return nil, kvstore.ErrNotFound
	}
	return valueOf(resp.Item)
}

// Put writes key in ns.
func (s *Store) Put(ctx context.Context, ns, key string, value []byte) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	item := s.itemKey(ns, key)
	item[attrValue] = &types.AttributeValueMemberB{Value: value}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put item to DynamoDB: %w", err)
	}
	return nil
}

// Delete removes key from ns.
func (s *Store) Delete(ctx context.Context, ns, key string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       s.itemKey(ns, key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from DynamoDB: %w", err)
	}
	return nil
}

// Scan queries the ns partition for keys beginning with prefix, in sort
// key order.
func (s *Store) Scan(ctx context.Context, ns, prefix string, fn func(key string, value []byte) error) error {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("ns = :ns"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ns": &types.AttributeValueMemberS{Value: ns},
		},
		ConsistentRead: aws.Bool(true),
	}
	if prefix != "" {
		input.KeyConditionExpression = aws.String("ns = :ns AND begins_with(k, :p)")
		input.ExpressionAttributeValues[":p"] = &types.AttributeValueMemberS{Value: prefix}
	}

	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to query DynamoDB: %w", err)
		}
		for _, item := range page.Items {
			k, ok := item[attrKey].(*types.AttributeValueMemberS)
			if !ok {
				return errors.New("invalid k attribute in DynamoDB")
			}
			v, err := valueOf(item)
			if err != nil {
				return err
			}
			if err := fn(k.Value, v); err != nil {
				if errors.Is(err, kvstore.ErrStopScan) {
					return nil
				}
				return err
			}
		}
	}
	return nil
}

func valueOf(item map[string]types.AttributeValue) ([]byte, error) {
	v, ok := item[attrValue].(*types.AttributeValueMemberB)
	if !ok {
		return nil, errors.New("invalid v attribute in DynamoDB")
	}
	return v.Value, nil
}
