package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/modaline/storefront/internal/aws"
)

// settingsKey is the fixed partition key; the table holds one document.
const settingsKey = "store"

// Settings is the store configuration document.
type Settings struct {
	SettingsID   string    `dynamodbav:"settings_id" json:"-"`
	StoreName    string    `dynamodbav:"store_name" json:"storeName"`
	Currency     string    `dynamodbav:"currency" json:"currency"`
	ShippingFlat float64   `dynamodbav:"shipping_flat" json:"shippingFlat"`
	TaxRate      float64   `dynamodbav:"tax_rate" json:"taxRate"`
	SupportEmail string    `dynamodbav:"support_email,omitempty" json:"supportEmail,omitempty"`
	UpdatedAt    time.Time `dynamodbav:"updated_at" json:"updatedAt"`
}

// Defaults returned before the settings document is first written.
func Defaults() Settings {
	return Settings{
		SettingsID: settingsKey,
		StoreName:  "Modaline",
		Currency:   "USD",
	}
}

// Store reads and writes the single settings document.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new settings Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Get returns the stored settings, or Defaults when nothing is stored yet.
func (s *Store) Get(ctx context.Context) (Settings, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"settings_id": &types.AttributeValueMemberS{Value: settingsKey},
		},
	})
	if err != nil {
		return Settings{}, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return Defaults(), nil
	}
	var st Settings
	if err := attributevalue.UnmarshalMap(out.Item, &st); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return st, nil
}

// Put overwrites the settings document.
func (s *Store) Put(ctx context.Context, st Settings) (Settings, error) {
	st.SettingsID = settingsKey
	st.UpdatedAt = s.nowFunc()

	item, err := attributevalue.MarshalMap(st)
	if err != nil {
		return Settings{}, fmt.Errorf("marshal settings: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	}); err != nil {
		return Settings{}, fmt.Errorf("put item: %w", err)
	}
	return st, nil
}
