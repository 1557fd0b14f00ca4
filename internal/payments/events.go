package payments

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/modaline/storefront/internal/aws"
)

// EventRecord is the shape persisted in the payment-events DynamoDB table.
// One record per delivered (order, payment, event type) tuple; its existence
// is what dedups webhook redelivery.
type EventRecord struct {
	EventKey    string    `dynamodbav:"event_key"` // PK: orderNumber|paymentID|eventType
	OrderNumber string    `dynamodbav:"order_number"`
	PaymentID   string    `dynamodbav:"payment_id"`
	EventType   string    `dynamodbav:"event_type"`
	CreatedAt   time.Time `dynamodbav:"created_at"`
	ExpiresAt   int64     `dynamodbav:"expires_at"` // TTL epoch seconds
}

// EventRegistry encapsulates dedup operations against DynamoDB.
type EventRegistry struct {
	client    aws.DynamoDBAPI
	tableName string
	ttlWindow time.Duration
	nowFunc   func() time.Time
}

// NewEventRegistry returns a configured EventRegistry.
// ttlWindow bounds how long a tuple stays deduplicated (e.g. 48h); provider
// redelivery windows are far shorter.
func NewEventRegistry(client aws.DynamoDBAPI, tableName string, ttlWindow time.Duration) *EventRegistry {
	return &EventRegistry{
		client:    client,
		tableName: tableName,
		ttlWindow: ttlWindow,
		nowFunc:   time.Now,
	}
}

// Register records the tuple if it has not been seen.
// Returns (created=true, nil) when this is the first delivery.
// Returns (created=false, nil) when the tuple already exists (redelivery).
// Returns (created=false, err) on other errors.
func (r *EventRegistry) Register(ctx context.Context, orderNumber, paymentID, eventType string) (bool, error) {
	now := r.nowFunc()
	rec := EventRecord{
		EventKey:    EventKey(orderNumber, paymentID, eventType),
		OrderNumber: orderNumber,
		PaymentID:   paymentID,
		EventType:   eventType,
		CreatedAt:   now,
		ExpiresAt:   now.Add(r.ttlWindow).Unix(),
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return false, fmt.Errorf("marshal record: %w", err)
	}

	input := &dyn.PutItemInput{
		TableName: &r.tableName,
		Item:      item,
		// Only create when attribute_not_exists(event_key)
		ConditionExpression: awsString("attribute_not_exists(event_key)"),
	}

	_, err = r.client.PutItem(ctx, input)
	if err != nil {
		// detect conditional check failure
		var sc smithy.APIError
		if errors.As(err, &sc) && sc.ErrorCode() == "ConditionalCheckFailedException" {
			return false, nil
		}
		return false, fmt.Errorf("put item: %w", err)
	}

	return true, nil
}

// Unregister removes a tuple so a later delivery is treated as first-seen
// again. Called when the mutation guarded by Register failed; without it the
// provider's redelivery would be acknowledged without the update ever
// applying. Removing an absent key is not an error.
func (r *EventRegistry) Unregister(ctx context.Context, orderNumber, paymentID, eventType string) error {
	_, err := r.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &r.tableName,
		Key: map[string]types.AttributeValue{
			"event_key": &types.AttributeValueMemberS{Value: EventKey(orderNumber, paymentID, eventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// EventKey builds the registry partition key for a tuple. Components are
// escaped so a delimiter inside an order number or payment id cannot alias
// two distinct tuples to one key.
func EventKey(orderNumber, paymentID, eventType string) string {
	return url.QueryEscape(orderNumber) + "|" + url.QueryEscape(paymentID) + "|" + url.QueryEscape(eventType)
}

func awsString(s string) *string { return &s }
