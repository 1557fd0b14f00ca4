package settings

import (
	"context"
	"testing"
	"time"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo holds at most the single settings document.
type mockDynamo struct {
	item map[string]types.AttributeValue
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	return &dyn.GetItemOutput{Item: m.item}, nil
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.item = params.Item
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

func TestGet_ReturnsDefaultsWhenUnset(t *testing.T) {
	store := NewStore(&mockDynamo{}, "settings")

	st, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("expected defaults, got error: %v", err)
	}
	if st.StoreName != "Modaline" || st.Currency != "USD" {
		t.Errorf("unexpected defaults: %+v", st)
	}
}

func TestPut_ThenGetRoundTrips(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	store := NewStore(&mockDynamo{}, "settings")
	store.nowFunc = func() time.Time { return fixed }

	saved, err := store.Put(context.Background(), Settings{
		StoreName:    "Atelier Nord",
		Currency:     "EUR",
		ShippingFlat: 7.50,
		TaxRate:      0.21,
		SupportEmail: "hello@ateliernord.example",
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if saved.SettingsID != "store" {
		t.Errorf("put must pin the fixed document key, got %q", saved.SettingsID)
	}
	if !saved.UpdatedAt.Equal(fixed) {
		t.Errorf("expected UpdatedAt %v, got %v", fixed, saved.UpdatedAt)
	}

	got, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.StoreName != "Atelier Nord" || got.Currency != "EUR" || got.TaxRate != 0.21 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
