package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/modaline/storefront/internal/aws"
	"github.com/modaline/storefront/internal/config"
	"github.com/modaline/storefront/internal/orders"
	"github.com/modaline/storefront/internal/payments"
	"github.com/rs/zerolog"
)

const metricNamespace = "Storefront/Orders"

// workerEventScope suffixes the event type in the dedup registry so the
// worker's registration never collides with the API-side registration of the
// same tuple.
const workerEventScope = "#worker"

// Processor reacts to captured-payment events: it emits order metrics and
// dispatches the confirmation notification. SQS delivers at least once, so
// each (order, payment, event) tuple is registered before metrics are
// emitted; redeliveries are swallowed without double-counting.
type Processor struct {
	orderStore *orders.Store
	registry   *payments.EventRegistry
	cloudwatch aws.CloudWatchAPI
	logger     zerolog.Logger
}

// NewProcessor creates a worker processor with AWS clients injected.
func NewProcessor(clients *aws.Clients, cfg config.Config, logger zerolog.Logger) *Processor {
	return &Processor{
		orderStore: orders.NewStore(clients.DynamoDB, cfg.OrdersTable),
		registry:   payments.NewEventRegistry(clients.DynamoDB, cfg.PaymentEventsTable, cfg.EventTTL),
		cloudwatch: clients.CloudWatch,
		logger:     logger,
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			p.logger.Error().Err(err).Msg("worker error")
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var evt OrderEvent
	if err := json.Unmarshal([]byte(rec.Body), &evt); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	p.logger.Info().Str("order", evt.OrderNumber).Str("payment", evt.PaymentID).
		Str("event", evt.EventType).Msg("received order event")

	o, err := p.orderStore.GetByNumber(ctx, evt.OrderNumber)
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}
	if o == nil {
		// Order deleted between capture and consumption; nothing to notify.
		// Swallow rather than retry into the DLQ.
		p.logger.Warn().Str("order", evt.OrderNumber).Msg("order event for missing order, skipping")
		return nil
	}

	created, err := p.registry.Register(ctx, evt.OrderNumber, evt.PaymentID, evt.EventType+workerEventScope)
	if err != nil {
		return fmt.Errorf("failed to register event: %w", err)
	}
	if !created {
		p.logger.Info().Str("order", evt.OrderNumber).Str("event", evt.EventType).
			Msg("duplicate order event, skipping")
		return nil
	}

	if err := p.putMetrics(ctx, evt); err != nil {
		// Release the registration so the Lambda retry re-emits the metrics.
		if uerr := p.registry.Unregister(ctx, evt.OrderNumber, evt.PaymentID, evt.EventType+workerEventScope); uerr != nil {
			p.logger.Error().Err(uerr).Str("order", evt.OrderNumber).
				Msg("failed to release event registration after metric failure")
		}
		return fmt.Errorf("failed to put metrics: %w", err)
	}

	// Confirmation dispatch is a log line until the mail provider is wired.
	p.logger.Info().Str("order", o.OrderNumber).Str("email", o.Customer.Email).
		Float64("total", o.Total).Msg("order confirmation dispatched")
	return nil
}

func (p *Processor) putMetrics(ctx context.Context, evt OrderEvent) error {
	dims := []cwtypes.Dimension{
		{Name: sdkaws.String("EventType"), Value: sdkaws.String(evt.EventType)},
	}
	_, err := p.cloudwatch.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(metricNamespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: sdkaws.String("PaymentsCaptured"),
				Value:      sdkaws.Float64(1),
				Unit:       cwtypes.StandardUnitCount,
				Dimensions: dims,
			},
			{
				MetricName: sdkaws.String("Revenue"),
				Value:      sdkaws.Float64(evt.Total),
				Unit:       cwtypes.StandardUnitNone,
				Dimensions: dims,
			},
		},
	})
	return err
}
