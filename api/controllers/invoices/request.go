package invoices

// GenerateRequest finalizes a cart session into an invoice.
type GenerateRequest struct {
	OverallDiscount string `json:"overall_discount"`
	CustomerName    string `json:"customer_name"`
}

// AdHocRow is one row of a row-based invoice request. The product's price is
// resolved against the catalog when the invoice is computed.
type AdHocRow struct {
	ProductName     string `json:"product_name" validate:"required"`
	Quantity        int    `json:"quantity" validate:"required,min=1"`
	DiscountPercent string `json:"discount_percent"`
}

// AdHocRequest bills an explicit list of rows without a cart session.
type AdHocRequest struct {
	Rows            []AdHocRow `json:"rows" validate:"required,min=1,dive"`
	OverallDiscount string     `json:"overall_discount"`
	CustomerName    string     `json:"customer_name"`
}
