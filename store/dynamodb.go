package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/arloliu/zoner/types"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// dynamoRecord is the item layout of one stored key.
type dynamoRecord struct {
	PK    string `dynamodbav:"PK"`
	Value []byte `dynamodbav:"Value"`
	TTL   int64  `dynamodbav:"TTL,omitempty"` // Unix seconds, for DynamoDB TTL
}

// DynamoDB implements types.Store on a DynamoDB table keyed by a string
// partition key named "PK".
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name zoner-allocations \
//	  --attribute-definitions AttributeName=PK,AttributeType=S \
//	  --key-schema AttributeName=PK,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
type DynamoDB struct {
	client DynamoDBAPI
	table  string
	ttl    time.Duration
	now    func() time.Time
}

var _ types.Store = (*DynamoDB)(nil)

// NewDynamoDB creates a DynamoDB-backed store.
//
// Parameters:
//   - client: DynamoDB client (usually *dynamodb.Client)
//   - table: Table name
//   - ttl: Item lifetime written to the TTL attribute; zero disables expiry
//
// Returns:
//   - *DynamoDB: Store backed by the table
func NewDynamoDB(client DynamoDBAPI, table string, ttl time.Duration) *DynamoDB {
	return &DynamoDB{client: client, table: table, ttl: ttl, now: time.Now}
}

func (s *DynamoDB) key(key string) map[string]ddbtypes.AttributeValue {
	return map[string]ddbtypes.AttributeValue{
		"PK": &ddbtypes.AttributeValueMemberS{Value: key},
	}
}

// Get returns the value stored under key.
func (s *DynamoDB) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.key(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", s.table, key, classifyDynamoError(err))
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrKeyNotFound, key)
	}

	var rec dynamoRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("%w: unmarshal %s: %w", types.ErrCorruptState, key, err)
	}
	if rec.TTL > 0 && s.now().Unix() >= rec.TTL {
		// DynamoDB deletes expired items lazily.
		return nil, fmt.Errorf("%w: %s (expired)", types.ErrKeyNotFound, key)
	}

	return rec.Value, nil
}

// Put stores value under key.
func (s *DynamoDB) Put(ctx context.Context, key string, value []byte) error {
	rec := dynamoRecord{PK: key, Value: value}
	if s.ttl > 0 {
		rec.TTL = s.now().Add(s.ttl).Unix()
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put %s/%s: %w", s.table, key, classifyDynamoError(err))
	}

	return nil
}

// Delete removes key.
func (s *DynamoDB) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(key),
	}); err != nil {
		return fmt.Errorf("delete %s/%s: %w", s.table, key, classifyDynamoError(err))
	}

	return nil
}

// classifyDynamoError marks client failures that a later retry may clear
// with types.ErrStoreUnavailable. Other errors are returned unchanged.
func classifyDynamoError(err error) error {
	if errors.Is(err, types.ErrStoreUnavailable) || !isDynamoUnavailable(err) {
		return err
	}

	return errors.Join(types.ErrStoreUnavailable, err)
}

func isDynamoUnavailable(err error) bool {
	var (
		throughput  *ddbtypes.ProvisionedThroughputExceededException
		limit       *ddbtypes.RequestLimitExceeded
		internal    *ddbtypes.InternalServerError
		missing     *ddbtypes.ResourceNotFoundException
		exhausted   *retry.MaxAttemptsError
		sendFailure *smithyhttp.RequestSendError
		apiErr      smithy.APIError
	)

	switch {
	case errors.As(err, &throughput), errors.As(err, &limit), errors.As(err, &internal):
		return true
	case errors.As(err, &missing):
		// Table not created yet or still provisioning.
		return true
	case errors.As(err, &exhausted), errors.As(err, &sendFailure):
		return true
	case errors.As(err, &apiErr):
		return apiErr.ErrorFault() == smithy.FaultServer
	default:
		return false
	}
}
