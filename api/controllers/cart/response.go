package cart

import (
	cartsvc "github.com/shivamcrackers/posbill-backend/internal/cart"
)

// LineView is one cart line as served to clients. UnitPrice is the price
// snapshot taken when the line was added.
type LineView struct {
	Index           int    `json:"index"`
	ProductName     string `json:"product_name"`
	Quantity        int    `json:"quantity"`
	DiscountPercent string `json:"discount_percent"`
	UnitPrice       string `json:"unit_price"`
}

// SessionView is a cart session with its lines.
type SessionView struct {
	SessionID string     `json:"session_id"`
	Lines     []LineView `json:"lines"`
	Size      int        `json:"size"`
}

func newSessionView(sessionID string, lines []cartsvc.Line) SessionView {
	views := make([]LineView, 0, len(lines))
	for i, line := range lines {
		views = append(views, newLineView(i, line))
	}
	return SessionView{SessionID: sessionID, Lines: views, Size: len(views)}
}

func newLineView(index int, line cartsvc.Line) LineView {
	return LineView{
		Index:           index,
		ProductName:     line.ProductName,
		Quantity:        line.Quantity,
		DiscountPercent: line.DiscountPercent.String(),
		UnitPrice:       line.UnitPrice.String(),
	}
}
