package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/modaline/storefront/internal/aws"
)

// FeaturedLimit caps the featured-products fallback result.
const FeaturedLimit = 8

var (
	// ErrDuplicateProductID signals a create with an already-assigned id.
	ErrDuplicateProductID = errors.New("product id already exists")
	// ErrNotFound signals that no product matches the id.
	ErrNotFound = errors.New("product not found")
)

// Store encapsulates operations on the products table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new catalog Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Get fetches a product by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, productID string) (*Product, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var p Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	return &p, nil
}

// List returns all products, optionally narrowed to a category.
func (s *Store) List(ctx context.Context, category string) ([]Product, error) {
	all, err := s.scanAll(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return all, nil
	}
	var out []Product
	for _, p := range all {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// Latest returns the n most recently created products, newest first.
func (s *Store) Latest(ctx context.Context, n int) ([]Product, error) {
	all, err := s.scanAll(ctx)
	if err != nil {
		return nil, err
	}
	sortByCreatedDesc(all)
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// Featured returns flagged products. When nothing is flagged it falls back
// to the most recently created products, newest first, capped at FeaturedLimit.
func (s *Store) Featured(ctx context.Context) ([]Product, error) {
	all, err := s.scanAll(ctx)
	if err != nil {
		return nil, err
	}
	var featured []Product
	for _, p := range all {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	if len(featured) > 0 {
		sortByCreatedDesc(featured)
		return featured, nil
	}
	sortByCreatedDesc(all)
	if len(all) > FeaturedLimit {
		all = all[:FeaturedLimit]
	}
	return all, nil
}

// Create persists a new product; the put is conditional on the id not
// existing so an id can never be reassigned.
func (s *Store) Create(ctx context.Context, p Product) (*Product, error) {
	now := s.nowFunc()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return nil, fmt.Errorf("marshal product: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(product_id)"),
	})
	if err != nil {
		var cc *types.ConditionalCheckFailedException
		if errors.As(err, &cc) {
			return nil, ErrDuplicateProductID
		}
		return nil, fmt.Errorf("put item: %w", err)
	}
	return &p, nil
}

// Update replaces a product document in full. Returns ErrNotFound when the
// id is absent; CreatedAt is preserved from the stored document by callers
// that fetched it first.
func (s *Store) Update(ctx context.Context, p Product) (*Product, error) {
	p.UpdatedAt = s.nowFunc()

	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return nil, fmt.Errorf("marshal product: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_exists(product_id)"),
	})
	if err != nil {
		var cc *types.ConditionalCheckFailedException
		if errors.As(err, &cc) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("put item: %w", err)
	}
	return &p, nil
}

// Delete removes a product. Returns ErrNotFound when the id is absent.
func (s *Store) Delete(ctx context.Context, productID string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
		ConditionExpression: awsString("attribute_exists(product_id)"),
	})
	if err != nil {
		var cc *types.ConditionalCheckFailedException
		if errors.As(err, &cc) {
			return ErrNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (s *Store) scanAll(ctx context.Context) ([]Product, error) {
	var result []Product
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dyn.ScanInput{
			TableName:         &s.tableName,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan products: %w", err)
		}
		var page []Product
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal products: %w", err)
		}
		result = append(result, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return result, nil
}

func sortByCreatedDesc(ps []Product) {
	sort.Slice(ps, func(i, j int) bool {
		return ps[i].CreatedAt.After(ps[j].CreatedAt)
	})
}

func awsString(s string) *string { return &s }
