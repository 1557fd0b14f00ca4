package validation

// CheckoutItem is a single line item in a checkout payload. Price is the
// unit price the storefront displayed; the struct-level validation checks
// it sums to the claimed totals.
type CheckoutItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Image     string  `json:"image,omitempty"`
}

// CheckoutCustomer is the customer contact/address block.
type CheckoutCustomer struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// CheckoutRequest is the payload for POST /orders.
type CheckoutRequest struct {
	OrderNumber   string           `json:"orderNumber" validate:"required"`
	Customer      CheckoutCustomer `json:"customer" validate:"required"`
	Items         []CheckoutItem   `json:"items" validate:"required,min=1,dive"`
	Subtotal      float64          `json:"subtotal" validate:"gte=0"`
	Shipping      float64          `json:"shipping" validate:"gte=0"`
	Tax           float64          `json:"tax" validate:"gte=0"`
	Total         float64          `json:"total" validate:"required,gt=0"`
	PaymentMethod string           `json:"paymentMethod" validate:"required"`
}

// StatusUpdateRequest is the payload for PUT /admin/orders/:number. All
// fields are optional, but at least one of status/paymentStatus must be set.
type StatusUpdateRequest struct {
	Status           string `json:"status,omitempty" validate:"omitempty,oneof=pending processing shipped delivered"`
	PaymentStatus    string `json:"paymentStatus,omitempty" validate:"omitempty,oneof=authorized captured failed"`
	PaymentID        string `json:"paymentId,omitempty"`
	ErrorCode        string `json:"errorCode,omitempty"`
	ErrorDescription string `json:"errorDescription,omitempty"`
	Location         string `json:"location,omitempty"`
}

// VerifyPaymentRequest is the payload the client posts after the hosted
// checkout widget returns.
type VerifyPaymentRequest struct {
	OrderNumber string `json:"orderNumber" validate:"required"`
	PaymentID   string `json:"paymentId" validate:"required"`
	Signature   string `json:"signature" validate:"required"`
}

// ProductRequest is the admin payload for creating or replacing a product.
type ProductRequest struct {
	ProductID   string   `json:"productId,omitempty"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Images      []string `json:"images,omitempty"`
	Category    string   `json:"category,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Featured    bool     `json:"featured"`
}

// SettingsRequest is the payload for PUT /admin/settings.
type SettingsRequest struct {
	StoreName    string  `json:"storeName" validate:"required"`
	Currency     string  `json:"currency" validate:"required,len=3"`
	ShippingFlat float64 `json:"shippingFlat" validate:"gte=0"`
	TaxRate      float64 `json:"taxRate" validate:"gte=0,lte=1"`
	SupportEmail string  `json:"supportEmail" validate:"omitempty,email"`
}

// CartItemRequest addresses one cart line by its merge key.
type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// ContactRequest is the multipart contact-form field set (the optional
// image travels separately as a file part).
type ContactRequest struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,email"`
	Subject string `form:"subject,omitempty"`
	Message string `form:"message" validate:"required"`
}
