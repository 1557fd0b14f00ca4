package validation

import (
	"fmt"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// Financial fields are never trusted as supplied: the subtotal is
	// recomputed from the line items and the total from its components,
	// both with exact decimal arithmetic.
	v.RegisterStructValidation(checkoutStructValidation, CheckoutRequest{})
	v.RegisterStructValidation(statusUpdateStructValidation, StatusUpdateRequest{})

	return v
}

// checkoutStructValidation verifies the aggregated totals of a checkout payload.
func checkoutStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CheckoutRequest)

	sum := decimal.Zero
	for _, it := range req.Items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}

	subtotal := decimal.NewFromFloat(req.Subtotal)
	if !sum.Equal(subtotal) {
		sl.ReportError(req.Subtotal, "subtotal", "Subtotal", "subtotal_match_items",
			fmt.Sprintf("items sum %s != subtotal %s", sum, subtotal))
	}

	total := subtotal.
		Add(decimal.NewFromFloat(req.Shipping)).
		Add(decimal.NewFromFloat(req.Tax))
	if !total.Equal(decimal.NewFromFloat(req.Total)) {
		sl.ReportError(req.Total, "total", "Total", "total_match_components",
			fmt.Sprintf("subtotal+shipping+tax %s != total %.2f", total, req.Total))
	}
}

// statusUpdateStructValidation rejects an update that carries nothing to merge.
func statusUpdateStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(StatusUpdateRequest)
	if req.Status == "" && req.PaymentStatus == "" {
		sl.ReportError(req.Status, "status", "Status", "status_or_payment_status", "")
	}
}
