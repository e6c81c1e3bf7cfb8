package cart

// AddLineRequest appends one line to a cart session. DiscountPercent travels
// as a decimal string and defaults to zero when omitted.
type AddLineRequest struct {
	ProductName     string `json:"product_name" validate:"required"`
	Quantity        int    `json:"quantity" validate:"required,min=1"`
	DiscountPercent string `json:"discount_percent"`
}
