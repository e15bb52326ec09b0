package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"chat-agent/internal/domain"
)

const (
	pkPrefixExchange = "EXCH#"
	ttlDuration      = 30 * 24 * time.Hour // 30-day TTL
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Client appends exchanges to a DynamoDB table.
type Client struct {
	api       dynamodbAPI
	tableName string
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName}, nil
}

func exchangePK(id string) string {
	return pkPrefixExchange + id
}

func exchangeSK(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339Nano)
}

// ttlValue returns a Unix timestamp 30 days after ts.
func ttlValue(ts time.Time) int64 {
	return ts.Add(ttlDuration).Unix()
}

// Record writes ex once. A second write for the same id and timestamp fails
// the condition check instead of overwriting the first.
func (c *Client) Record(ctx context.Context, ex domain.Exchange) error {
	if strings.TrimSpace(ex.ID) == "" {
		return errors.New("repository: Record: exchange id is required")
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = now()
	}
	if ex.TTL == 0 {
		ex.TTL = ttlValue(ex.CreatedAt)
	}

	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.tableName),
		Item:                exchangeItem(ex),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return fmt.Errorf("repository: Record: exchange %q already recorded: %w", ex.ID, err)
		}
		return fmt.Errorf("repository: Record: %w", err)
	}
	return nil
}

func exchangeItem(ex domain.Exchange) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"PK":          &types.AttributeValueMemberS{Value: exchangePK(ex.ID)},
		"SK":          &types.AttributeValueMemberS{Value: exchangeSK(ex.CreatedAt)},
		"exchangeId":  &types.AttributeValueMemberS{Value: ex.ID},
		"provider":    &types.AttributeValueMemberS{Value: string(ex.Provider)},
		"model":       &types.AttributeValueMemberS{Value: ex.Model},
		"allowSearch": &types.AttributeValueMemberBOOL{Value: ex.AllowSearch},
		"query":       &types.AttributeValueMemberS{Value: ex.Query},
		"response":    &types.AttributeValueMemberS{Value: ex.Response},
		"ttl":         &types.AttributeValueMemberN{Value: strconv.FormatInt(ex.TTL, 10)},
	}
	if ex.ErrorCode != "" {
		item["errorCode"] = &types.AttributeValueMemberS{Value: ex.ErrorCode}
	}
	return item
}

var now = func() time.Time {
	return time.Now().UTC()
}
