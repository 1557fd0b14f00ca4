package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/modaline/storefront/internal/aws"
)

// cartRecord is the document stored in the carts table.
type cartRecord struct {
	CartID    string     `dynamodbav:"cart_id"` // PK
	Items     []LineItem `dynamodbav:"items"`
	UpdatedAt time.Time  `dynamodbav:"updated_at"`
}

// DynamoPersister keeps guest carts server-side, keyed by cart id.
type DynamoPersister struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewDynamoPersister returns a Persister backed by the carts table.
func NewDynamoPersister(client aws.DynamoDBAPI, tableName string) *DynamoPersister {
	return &DynamoPersister{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Load returns the stored lines, or nil when the cart has never been saved.
func (p *DynamoPersister) Load(ctx context.Context, cartID string) ([]LineItem, error) {
	out, err := p.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &p.tableName,
		Key: map[string]types.AttributeValue{
			"cart_id": &types.AttributeValueMemberS{Value: cartID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var rec cartRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return rec.Items, nil
}

// Save overwrites the cart document with the full item list.
func (p *DynamoPersister) Save(ctx context.Context, cartID string, items []LineItem) error {
	rec := cartRecord{
		CartID:    cartID,
		Items:     items,
		UpdatedAt: p.nowFunc(),
	}
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	_, err = p.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &p.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}
