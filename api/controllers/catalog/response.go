package catalog

import (
	catalogsvc "github.com/shivamcrackers/posbill-backend/internal/catalog"
)

// Item is one catalog entry as served to clients.
type Item struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

func newItems(entries []catalogsvc.Entry) []Item {
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{Name: entry.Name, Price: entry.UnitPrice.String()})
	}
	return items
}
