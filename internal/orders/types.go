package orders

import "time"

// Order statuses. Cancelled never appears on the update path; reporting
// recognizes it when present in historical data.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Payment statuses set by the verification and webhook paths.
const (
	PaymentAuthorized = "authorized"
	PaymentCaptured   = "captured"
	PaymentFailed     = "failed"
)

// Customer is the contact/address block captured at checkout.
type Customer struct {
	Name       string `dynamodbav:"name" json:"name"`
	Email      string `dynamodbav:"email" json:"email"`
	Phone      string `dynamodbav:"phone,omitempty" json:"phone,omitempty"`
	Address    string `dynamodbav:"address" json:"address"`
	City       string `dynamodbav:"city,omitempty" json:"city,omitempty"`
	State      string `dynamodbav:"state,omitempty" json:"state,omitempty"`
	PostalCode string `dynamodbav:"postal_code,omitempty" json:"postalCode,omitempty"`
	Country    string `dynamodbav:"country,omitempty" json:"country,omitempty"`
}

// Item is a line-item snapshot. Price is the unit price at order time,
// never the live catalog price.
type Item struct {
	ProductID string  `dynamodbav:"product_id" json:"productId"`
	Name      string  `dynamodbav:"name" json:"name"`
	Price     float64 `dynamodbav:"price" json:"price"`
	Quantity  int     `dynamodbav:"quantity" json:"quantity"`
	Size      string  `dynamodbav:"size,omitempty" json:"size,omitempty"`
	Color     string  `dynamodbav:"color,omitempty" json:"color,omitempty"`
	Image     string  `dynamodbav:"image,omitempty" json:"image,omitempty"`
}

// TrackingEntry is one row of the append-only tracking history.
type TrackingEntry struct {
	Status    string    `dynamodbav:"status" json:"status"`
	Detail    string    `dynamodbav:"detail" json:"detail"`
	Location  string    `dynamodbav:"location,omitempty" json:"location,omitempty"`
	Timestamp time.Time `dynamodbav:"timestamp" json:"timestamp"`
}

// Order is the document stored in the orders table. The business-key order
// number is the partition key, so uniqueness is enforced by the table itself.
type Order struct {
	OrderNumber       string          `dynamodbav:"order_number" json:"orderNumber"` // PK
	Customer          Customer        `dynamodbav:"customer" json:"customer"`
	Items             []Item          `dynamodbav:"items" json:"items"`
	Subtotal          float64         `dynamodbav:"subtotal" json:"subtotal"`
	Shipping          float64         `dynamodbav:"shipping" json:"shipping"`
	Tax               float64         `dynamodbav:"tax" json:"tax"`
	Total             float64         `dynamodbav:"total" json:"total"`
	PaymentMethod     string          `dynamodbav:"payment_method" json:"paymentMethod"`
	Status            string          `dynamodbav:"status" json:"status"`
	PaymentStatus     string          `dynamodbav:"payment_status,omitempty" json:"paymentStatus,omitempty"`
	PaymentID         string          `dynamodbav:"payment_id,omitempty" json:"paymentId,omitempty"`
	ErrorCode         string          `dynamodbav:"error_code,omitempty" json:"errorCode,omitempty"`
	ErrorDescription  string          `dynamodbav:"error_description,omitempty" json:"errorDescription,omitempty"`
	CurrentLocation   string          `dynamodbav:"current_location,omitempty" json:"currentLocation,omitempty"`
	EstimatedDelivery string          `dynamodbav:"estimated_delivery,omitempty" json:"estimatedDelivery,omitempty"`
	TrackingHistory   []TrackingEntry `dynamodbav:"tracking_history" json:"trackingHistory"`
	CreatedAt         time.Time       `dynamodbav:"created_at" json:"createdAt"`
	UpdatedAt         time.Time       `dynamodbav:"updated_at" json:"updatedAt"`
}

// StatusUpdate is the partial field set merged by UpdateStatus. Empty
// strings mean "not supplied".
type StatusUpdate struct {
	Status           string
	PaymentStatus    string
	PaymentID        string
	ErrorCode        string
	ErrorDescription string
	Location         string
}

// TrackingStatus returns the status recorded in the tracking entry for this
// update: the payment status when present, the order status otherwise.
func (u StatusUpdate) TrackingStatus() string {
	if u.PaymentStatus != "" {
		return u.PaymentStatus
	}
	return u.Status
}

// TrackingDetail returns the detail string for the tracking entry.
func (u StatusUpdate) TrackingDetail() string {
	if u.ErrorDescription != "" {
		return u.ErrorDescription
	}
	return "Status updated"
}

// Filter narrows List results. Zero value means no filtering.
type Filter struct {
	Email  string
	Status string
}
