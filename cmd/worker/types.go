package main

// OrderEvent is the payload sent from API -> SQS -> Worker when a payment
// is captured.
type OrderEvent struct {
	OrderNumber string  `json:"order_number"`
	PaymentID   string  `json:"payment_id"`
	EventType   string  `json:"event_type"`
	Total       float64 `json:"total"`
}
