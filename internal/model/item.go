package model

// Item represents a stock-keeping variant of a product.
type Item struct {
	ID        int64
	ProductID int64
	Size      *string
	Color     *string
	Stock     int
}

// ItemPatch holds the fields of a partial item update.
type ItemPatch struct {
	Size  Optional[string]
	Color Optional[string]
	Stock Optional[int]
}

// Apply overwrites the fields present in the patch. Explicit nulls clear size and color.
func (ip ItemPatch) Apply(i *Item) {
	if ip.Size.Present() {
		i.Size = ip.Size.Ptr()
	}
	if ip.Color.Present() {
		i.Color = ip.Color.Ptr()
	}
	if ip.Stock.Present() && !ip.Stock.Null {
		i.Stock = ip.Stock.Value
	}
}
