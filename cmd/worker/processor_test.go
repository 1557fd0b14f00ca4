package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	internalaws "github.com/modaline/storefront/internal/aws"
	"github.com/modaline/storefront/internal/config"
	"github.com/modaline/storefront/internal/orders"
	"github.com/rs/zerolog"
)

// mockDynamo serves GetItem from a fixed set of orders and conditional
// puts/deletes on the event registry table.
type mockDynamo struct {
	items  map[string]map[string]ddbtypes.AttributeValue
	events map[string]map[string]ddbtypes.AttributeValue
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	key := params.Key["order_number"].(*ddbtypes.AttributeValueMemberS).Value
	return &dyn.GetItemOutput{Item: m.items[key]}, nil
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	k := params.Item["event_key"].(*ddbtypes.AttributeValueMemberS).Value
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(event_key)" {
		if _, ok := m.events[k]; ok {
			return nil, &ddbtypes.ConditionalCheckFailedException{}
		}
	}
	m.events[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	return nil, errors.New("not used")
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	k := params.Key["event_key"].(*ddbtypes.AttributeValueMemberS).Value
	delete(m.events, k)
	return &dyn.DeleteItemOutput{}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	return nil, errors.New("not used")
}

// mockCloudWatch records metric calls.
type mockCloudWatch struct {
	calls  int
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.calls++
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func newTestProcessor(t *testing.T, cw *mockCloudWatch, stored ...orders.Order) *Processor {
	t.Helper()
	dynamo := &mockDynamo{
		items:  map[string]map[string]ddbtypes.AttributeValue{},
		events: map[string]map[string]ddbtypes.AttributeValue{},
	}
	for _, o := range stored {
		item, err := attributevalue.MarshalMap(o)
		if err != nil {
			t.Fatalf("marshal order: %v", err)
		}
		dynamo.items[o.OrderNumber] = item
	}
	cfg := config.Config{
		OrdersTable:        "orders",
		PaymentEventsTable: "payment-events",
		EventTTL:           48 * time.Hour,
	}
	return NewProcessor(&internalaws.Clients{DynamoDB: dynamo, CloudWatch: cw}, cfg, zerolog.Nop())
}

func sqsEvent(bodies ...string) events.SQSEvent {
	ev := events.SQSEvent{}
	for _, b := range bodies {
		ev.Records = append(ev.Records, events.SQSMessage{Body: b})
	}
	return ev
}

func TestHandle_EmitsMetricsForCapturedOrder(t *testing.T) {
	cw := &mockCloudWatch{}
	p := newTestProcessor(t, cw, orders.Order{
		OrderNumber: "ORD-1001",
		Total:       150.35,
	})

	body := `{"order_number":"ORD-1001","payment_id":"pay_1","event_type":"payment.captured","total":150.35}`
	if err := p.Handle(context.Background(), sqsEvent(body)); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if cw.calls != 1 {
		t.Fatalf("expected 1 PutMetricData call, got %d", cw.calls)
	}
	input := cw.inputs[0]
	if got := *input.Namespace; got != "Storefront/Orders" {
		t.Errorf("unexpected namespace %q", got)
	}
	if len(input.MetricData) != 2 {
		t.Fatalf("expected 2 metric data points, got %d", len(input.MetricData))
	}
	names := map[string]float64{}
	for _, d := range input.MetricData {
		names[*d.MetricName] = *d.Value
	}
	if names["PaymentsCaptured"] != 1 {
		t.Errorf("expected PaymentsCaptured=1, got %v", names["PaymentsCaptured"])
	}
	if names["Revenue"] != 150.35 {
		t.Errorf("expected Revenue=150.35, got %v", names["Revenue"])
	}
}

func TestHandle_MissingOrderIsSwallowed(t *testing.T) {
	cw := &mockCloudWatch{}
	p := newTestProcessor(t, cw) // no stored orders

	body := `{"order_number":"ORD-GHOST","payment_id":"pay_1","event_type":"payment.captured","total":10}`
	if err := p.Handle(context.Background(), sqsEvent(body)); err != nil {
		t.Fatalf("missing order must not trigger a retry, got %v", err)
	}
	if cw.calls != 0 {
		t.Errorf("no metrics should be emitted for a missing order, got %d calls", cw.calls)
	}
}

func TestHandle_MalformedBodyReturnsError(t *testing.T) {
	cw := &mockCloudWatch{}
	p := newTestProcessor(t, cw)

	if err := p.Handle(context.Background(), sqsEvent(`{not json`)); err == nil {
		t.Fatal("expected error for malformed message body")
	}
}

func TestHandle_RedeliveredMessageEmitsMetricsOnce(t *testing.T) {
	cw := &mockCloudWatch{}
	p := newTestProcessor(t, cw, orders.Order{OrderNumber: "ORD-1001", Total: 150.35})

	body := `{"order_number":"ORD-1001","payment_id":"pay_1","event_type":"payment.captured","total":150.35}`
	if err := p.Handle(context.Background(), sqsEvent(body)); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := p.Handle(context.Background(), sqsEvent(body)); err != nil {
		t.Fatalf("redelivery must be swallowed, got %v", err)
	}
	if cw.calls != 1 {
		t.Errorf("redelivery double-counted metrics: %d PutMetricData calls", cw.calls)
	}
}

func TestHandle_MetricFailureReturnsErrorForRetry(t *testing.T) {
	cw := &mockCloudWatch{err: errors.New("throttled")}
	p := newTestProcessor(t, cw, orders.Order{OrderNumber: "ORD-1001", Total: 10})

	body := `{"order_number":"ORD-1001","payment_id":"pay_1","event_type":"payment.captured","total":10}`
	if err := p.Handle(context.Background(), sqsEvent(body)); err == nil {
		t.Fatal("expected error when metric emission fails")
	}

	// the failed attempt must not leave a registration behind: the retry
	// has to emit the metrics
	cw.err = nil
	if err := p.Handle(context.Background(), sqsEvent(body)); err != nil {
		t.Fatalf("retry after metric failure: %v", err)
	}
	if cw.calls != 2 {
		t.Errorf("expected the retry to emit metrics, got %d total calls", cw.calls)
	}
}

func TestHandle_ProcessesWholeBatch(t *testing.T) {
	cw := &mockCloudWatch{}
	p := newTestProcessor(t, cw,
		orders.Order{OrderNumber: "ORD-1", Total: 10},
		orders.Order{OrderNumber: "ORD-2", Total: 20},
	)

	ev := sqsEvent(
		`{"order_number":"ORD-1","payment_id":"pay_1","event_type":"payment.captured","total":10}`,
		`{"order_number":"ORD-2","payment_id":"pay_2","event_type":"payment.captured","total":20}`,
	)
	if err := p.Handle(context.Background(), ev); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if cw.calls != 2 {
		t.Errorf("expected 2 PutMetricData calls, got %d", cw.calls)
	}
}
