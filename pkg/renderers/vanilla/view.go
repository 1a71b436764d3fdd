package vanilla

import (
	"github.com/goliatone/go-prodattr/pkg/model"
)

// View is the view-model handed to a widget template.
type View struct {
	Code     string `json:"code"`
	FillType string `json:"fill_type"`
	Items    []Item `json:"items"`
}

// Item is a single rendered choice.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// NewView builds the view-model for values, preserving their order.
func NewView(code, fillType string, values []model.AttributeValue) View {
	items := make([]Item, 0, len(values))
	for _, value := range values {
		items = append(items, Item{
			ID:    value.ID.String(),
			Label: value.Label,
		})
	}
	return View{Code: code, FillType: fillType, Items: items}
}
