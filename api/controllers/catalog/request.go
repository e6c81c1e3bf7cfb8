package catalog

// UpsertItemRequest adds a product or changes its price. Price travels as a
// decimal string to keep exact values across the wire.
type UpsertItemRequest struct {
	Name  string `json:"name" validate:"required"`
	Price string `json:"price" validate:"required"`
}
