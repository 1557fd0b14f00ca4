package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modaline/storefront/internal/aws"
	"github.com/modaline/storefront/internal/orders"
	"github.com/rs/zerolog"
)

// Provider event tags. EventVerified is not a provider tag: it marks the
// synchronous widget-return confirmation in the dedup registry so a client
// retry of the verify call cannot append a second tracking entry.
const (
	EventAuthorized = "payment.authorized"
	EventCaptured   = "payment.captured"
	EventFailed     = "payment.failed"
	EventVerified   = "payment.verified"
)

// ErrInvalidPayload signals a webhook body that does not parse.
var ErrInvalidPayload = errors.New("invalid webhook payload")

// Event is a parsed provider webhook payload.
type Event struct {
	Type             string `json:"event"`
	OrderNumber      string `json:"orderNumber"`
	PaymentID        string `json:"paymentId"`
	ErrorCode        string `json:"errorCode,omitempty"`
	ErrorDescription string `json:"errorDescription,omitempty"`
}

// OrderStore is the slice of the orders store the processor needs.
type OrderStore interface {
	GetByNumber(ctx context.Context, orderNumber string) (*orders.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, upd orders.StatusUpdate) (*orders.Order, error)
}

// Processor applies payment events to orders. Both the synchronous
// verification flow and the asynchronous webhook flow run through it, so
// dedup and status mapping live in exactly one place.
type Processor struct {
	registry  *EventRegistry
	orders    OrderStore
	publisher *aws.Publisher // optional; nil disables order-event publishing
	logger    zerolog.Logger
}

// NewProcessor wires a Processor. publisher may be nil.
func NewProcessor(registry *EventRegistry, store OrderStore, publisher *aws.Publisher, logger zerolog.Logger) *Processor {
	return &Processor{
		registry:  registry,
		orders:    store,
		publisher: publisher,
		logger:    logger,
	}
}

// HandleWebhook parses an already signature-verified webhook body and
// applies it. Unrecognized event tags are logged and ignored. Redelivered
// events are acknowledged without a second mutation.
func (p *Processor) HandleWebhook(ctx context.Context, body []byte) error {
	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var upd orders.StatusUpdate
	switch evt.Type {
	case EventAuthorized:
		upd = orders.StatusUpdate{
			PaymentStatus: orders.PaymentAuthorized,
			PaymentID:     evt.PaymentID,
		}
	case EventCaptured:
		upd = orders.StatusUpdate{
			Status:        orders.StatusProcessing,
			PaymentStatus: orders.PaymentCaptured,
			PaymentID:     evt.PaymentID,
		}
	case EventFailed:
		upd = orders.StatusUpdate{
			PaymentStatus:    orders.PaymentFailed,
			PaymentID:        evt.PaymentID,
			ErrorCode:        evt.ErrorCode,
			ErrorDescription: evt.ErrorDescription,
		}
	default:
		p.logger.Warn().Str("event", evt.Type).Str("order", evt.OrderNumber).
			Msg("ignoring unrecognized payment event")
		return nil
	}

	_, err := p.apply(ctx, evt, upd)
	return err
}

// ConfirmPayment is the synchronous path, called after the widget signature
// has been verified. A repeated confirmation returns the current order
// without appending tracking history.
func (p *Processor) ConfirmPayment(ctx context.Context, orderNumber, paymentID string) (*orders.Order, error) {
	evt := Event{
		Type:        EventVerified,
		OrderNumber: orderNumber,
		PaymentID:   paymentID,
	}
	upd := orders.StatusUpdate{
		Status:        orders.StatusProcessing,
		PaymentStatus: orders.PaymentCaptured,
		PaymentID:     paymentID,
	}
	return p.apply(ctx, evt, upd)
}

func (p *Processor) apply(ctx context.Context, evt Event, upd orders.StatusUpdate) (*orders.Order, error) {
	created, err := p.registry.Register(ctx, evt.OrderNumber, evt.PaymentID, evt.Type)
	if err != nil {
		return nil, fmt.Errorf("register payment event: %w", err)
	}
	if !created {
		p.logger.Info().Str("event", evt.Type).Str("order", evt.OrderNumber).
			Str("payment", evt.PaymentID).Msg("duplicate payment event, skipping")
		o, err := p.orders.GetByNumber(ctx, evt.OrderNumber)
		if err != nil {
			return nil, err
		}
		if o == nil {
			return nil, orders.ErrNotFound
		}
		return o, nil
	}

	o, err := p.orders.UpdateStatus(ctx, evt.OrderNumber, upd)
	if err != nil {
		// The tuple is registered but the mutation did not land. Release the
		// registration so the provider's redelivery is not acknowledged as a
		// duplicate with the update still missing.
		if uerr := p.registry.Unregister(ctx, evt.OrderNumber, evt.PaymentID, evt.Type); uerr != nil {
			p.logger.Error().Err(uerr).Str("event", evt.Type).Str("order", evt.OrderNumber).
				Msg("failed to release payment event registration after update failure")
		}
		return nil, err
	}

	if evt.Type == EventCaptured || evt.Type == EventVerified {
		p.publishCaptured(ctx, o, evt)
	}
	return o, nil
}

// publishCaptured emits the order event consumed by the worker. Publish
// failure is logged, not returned: the provider must still get its ack and
// the order record is already correct.
func (p *Processor) publishCaptured(ctx context.Context, o *orders.Order, evt Event) {
	if p.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"order_number": o.OrderNumber,
		"payment_id":   evt.PaymentID,
		"event_type":   evt.Type,
		"total":        o.Total,
	})
	if err != nil {
		p.logger.Error().Err(err).Str("order", o.OrderNumber).Msg("marshal order event")
		return
	}
	attrs := map[string]string{
		"order_number": o.OrderNumber,
		"event_type":   evt.Type,
	}
	if err := p.publisher.SendOrderEvent(ctx, string(body), attrs); err != nil {
		p.logger.Error().Err(err).Str("order", o.OrderNumber).Msg("publish order event")
	}
}
