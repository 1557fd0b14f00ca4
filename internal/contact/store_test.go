package contact

import (
	"context"
	"testing"
	"time"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type mockDynamo struct {
	items []map[string]types.AttributeValue
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	return &dyn.GetItemOutput{}, nil
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.items = append(m.items, params.Item)
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	return &dyn.UpdateItemOutput{}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	return &dyn.DeleteItemOutput{}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	return &dyn.ScanOutput{}, nil
}

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	dynamo := &mockDynamo{}
	store := NewStore(dynamo, "contacts")
	store.nowFunc = func() time.Time { return fixed }

	sub, err := store.Create(context.Background(), Submission{
		Name:    "Maya Ortiz",
		Email:   "maya@example.com",
		Message: "Where is my order?",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sub.SubmissionID == "" {
		t.Error("expected a generated submission id")
	}
	if !sub.CreatedAt.Equal(fixed) {
		t.Errorf("expected CreatedAt %v, got %v", fixed, sub.CreatedAt)
	}
	if len(dynamo.items) != 1 {
		t.Fatalf("expected 1 persisted item, got %d", len(dynamo.items))
	}

	// caller-supplied ids are never trusted
	other, err := store.Create(context.Background(), Submission{SubmissionID: "custom", Name: "A", Email: "a@b.c", Message: "hi"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if other.SubmissionID == "custom" {
		t.Error("expected the store to replace the caller-supplied id")
	}
}
