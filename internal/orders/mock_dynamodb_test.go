package orders

import (
	"context"
	"errors"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a very small in-memory mock for the operations the orders
// store issues, keyed by order_number.
// NOTE: This is intentionally minimal and not production-grade.
type mockDynamo struct {
	mu          sync.Mutex
	table       map[string]map[string]types.AttributeValue
	putCalls    int
	updateCalls int
	deleteCalls int
	scanCalls   int
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{
		table: map[string]map[string]types.AttributeValue{},
	}
}

func pkOf(item map[string]types.AttributeValue) (string, error) {
	attr, ok := item["order_number"]
	if !ok {
		return "", errors.New("missing order_number")
	}
	return attr.(*types.AttributeValueMemberS).Value, nil
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	pk, err := pkOf(params.Item)
	if err != nil {
		return nil, err
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(order_number)" {
		if _, exists := m.table[pk]; exists {
			// simulate conditional failure
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.table[pk] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pk, err := pkOf(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.table[pk]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

// UpdateItem applies the store's update expression naively: every known
// placeholder that is present gets written to its attribute, and :entry is
// appended to tracking_history.
func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	pk, err := pkOf(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.table[pk]
	if !ok {
		if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_exists(order_number)" {
			return nil, &types.ConditionalCheckFailedException{}
		}
		return nil, errors.New("item not found")
	}

	placeholders := map[string]string{
		":ua":     "updated_at",
		":status": "status",
		":ps":     "payment_status",
		":pid":    "payment_id",
		":ec":     "error_code",
		":ed":     "error_description",
		":loc":    "current_location",
	}
	for ph, attr := range placeholders {
		if v, ok := params.ExpressionAttributeValues[ph]; ok {
			item[attr] = v
		}
	}
	if v, ok := params.ExpressionAttributeValues[":entry"]; ok {
		entries := v.(*types.AttributeValueMemberL).Value
		existing, ok := item["tracking_history"].(*types.AttributeValueMemberL)
		if !ok {
			existing = &types.AttributeValueMemberL{}
		}
		item["tracking_history"] = &types.AttributeValueMemberL{
			Value: append(existing.Value, entries...),
		}
	}
	m.table[pk] = item
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	pk, err := pkOf(params.Key)
	if err != nil {
		return nil, err
	}
	if _, ok := m.table[pk]; !ok {
		if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_exists(order_number)" {
			return nil, &types.ConditionalCheckFailedException{}
		}
		return &dyn.DeleteItemOutput{}, nil
	}
	delete(m.table, pk)
	return &dyn.DeleteItemOutput{}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanCalls++
	out := &dyn.ScanOutput{}
	for _, item := range m.table {
		out.Items = append(out.Items, item)
	}
	return out, nil
}
