package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/modaline/storefront/internal/aws"
)

// ErrDuplicateOrderNumber signals that the business key already exists.
// The conditional put is the conflict signal; there is no separate
// check-then-insert step, so concurrent checkouts cannot both win.
var ErrDuplicateOrderNumber = errors.New("order number already exists")

// ErrNotFound signals that no order matches the business key.
var ErrNotFound = errors.New("order not found")

// Store encapsulates operations on the orders table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Create persists a new order. The put is conditional on the order number
// not existing; a conditional failure maps to ErrDuplicateOrderNumber and
// nothing is written. CreatedAt/UpdatedAt are stamped server-side.
func (s *Store) Create(ctx context.Context, order Order) (*Order, error) {
	now := s.nowFunc()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	if len(order.TrackingHistory) == 0 {
		order.TrackingHistory = []TrackingEntry{{
			Status:    order.Status,
			Detail:    "Order placed",
			Timestamp: now,
		}}
	}

	item, err := attributevalue.MarshalMap(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	input := &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(order_number)"),
	}

	_, err = s.client.PutItem(ctx, input)
	if err != nil {
		var cc *types.ConditionalCheckFailedException
		if errors.As(err, &cc) {
			return nil, ErrDuplicateOrderNumber
		}
		return nil, fmt.Errorf("put item: %w", err)
	}
	return &order, nil
}

// GetByNumber fetches an order by its business key. Returns (nil, nil) if not found.
func (s *Store) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	key := map[string]types.AttributeValue{
		"order_number": &types.AttributeValueMemberS{Value: orderNumber},
	}
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// List scans the full table and filters client-side. The order volume this
// store serves stays far below the point where a GSI would pay for itself,
// and admin reporting needs the whole collection anyway.
func (s *Store) List(ctx context.Context, f Filter) ([]Order, error) {
	var result []Order
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dyn.ScanInput{
			TableName:         &s.tableName,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan orders: %w", err)
		}
		var page []Order
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal orders: %w", err)
		}
		for _, o := range page {
			if f.Email != "" && o.Customer.Email != f.Email {
				continue
			}
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			result = append(result, o)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return result, nil
}

// UpdateStatus merges the supplied partial fields into the order, stamps
// updated_at and appends exactly one tracking entry. This is the single
// mutation path shared by admin updates, synchronous payment verification
// and the webhook receiver. Returns ErrNotFound when no order matches.
func (s *Store) UpdateStatus(ctx context.Context, orderNumber string, upd StatusUpdate) (*Order, error) {
	now := s.nowFunc()

	entry := TrackingEntry{
		Status:    upd.TrackingStatus(),
		Detail:    upd.TrackingDetail(),
		Location:  upd.Location,
		Timestamp: now,
	}
	entryAV, err := attributevalue.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("marshal tracking entry: %w", err)
	}

	sets := []string{
		"updated_at = :ua",
		"tracking_history = list_append(if_not_exists(tracking_history, :empty), :entry)",
	}
	names := map[string]string{}
	values := map[string]types.AttributeValue{
		":ua":    &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
		":entry": &types.AttributeValueMemberL{Value: []types.AttributeValue{entryAV}},
	}

	if upd.Status != "" {
		sets = append(sets, "#s = :status")
		names["#s"] = "status"
		values[":status"] = &types.AttributeValueMemberS{Value: upd.Status}
	}
	if upd.PaymentStatus != "" {
		sets = append(sets, "payment_status = :ps")
		values[":ps"] = &types.AttributeValueMemberS{Value: upd.PaymentStatus}
	}
	if upd.PaymentID != "" {
		sets = append(sets, "payment_id = :pid")
		values[":pid"] = &types.AttributeValueMemberS{Value: upd.PaymentID}
	}
	if upd.ErrorCode != "" {
		sets = append(sets, "error_code = :ec")
		values[":ec"] = &types.AttributeValueMemberS{Value: upd.ErrorCode}
	}
	if upd.ErrorDescription != "" {
		sets = append(sets, "error_description = :ed")
		values[":ed"] = &types.AttributeValueMemberS{Value: upd.ErrorDescription}
	}
	if upd.Location != "" {
		sets = append(sets, "current_location = :loc")
		values[":loc"] = &types.AttributeValueMemberS{Value: upd.Location}
	}

	updateExpr := "SET " + strings.Join(sets, ", ")
	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_number": &types.AttributeValueMemberS{Value: orderNumber},
		},
		UpdateExpression:          &updateExpr,
		ExpressionAttributeValues: values,
		ConditionExpression:       awsString("attribute_exists(order_number)"),
		ReturnValues:              types.ReturnValueAllNew,
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}

	out, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		var cc *types.ConditionalCheckFailedException
		if errors.As(err, &cc) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update item: %w", err)
	}

	var o Order
	if err := attributevalue.UnmarshalMap(out.Attributes, &o); err != nil {
		return nil, fmt.Errorf("unmarshal updated order: %w", err)
	}
	return &o, nil
}

// Delete removes an order. Returns ErrNotFound when the business key is absent.
func (s *Store) Delete(ctx context.Context, orderNumber string) error {
	input := &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_number": &types.AttributeValueMemberS{Value: orderNumber},
		},
		ConditionExpression: awsString("attribute_exists(order_number)"),
	}
	_, err := s.client.DeleteItem(ctx, input)
	if err != nil {
		var cc *types.ConditionalCheckFailedException
		if errors.As(err, &cc) {
			return ErrNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func awsString(s string) *string { return &s }
