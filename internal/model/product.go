package model

import "time"

// Product represents a product entity with its properties and metadata.
type Product struct {
	ID          int64
	Name        string
	Description *string
	UpdatedAt   time.Time
	CreatedAt   time.Time
}

// InitMeta initializes the product timestamps. The ID is assigned by the database.
func (p *Product) InitMeta() {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
}

// Touch refreshes UpdatedAt, never moving it backwards.
func (p *Product) Touch(now time.Time) {
	if now.After(p.UpdatedAt) {
		p.UpdatedAt = now
	}
}

// ProductPatch holds the fields of a partial product update.
type ProductPatch struct {
	Name        Optional[string]
	Description Optional[string]
}

// Apply overwrites the fields present in the patch. An explicit null description clears it.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name.Present() && !pp.Name.Null {
		p.Name = pp.Name.Value
	}
	if pp.Description.Present() {
		p.Description = pp.Description.Ptr()
	}
}

// ProductWithItems is a product together with all of its items.
type ProductWithItems struct {
	ID          int64
	Name        string
	Description *string
	Items       []ProductItem
}

// ProductItem is an item nested under its product. Missing size and color are empty strings.
type ProductItem struct {
	ID        int64
	ProductID int64
	Size      string
	Color     string
	Stock     int
}

// CascadeResult describes the outcome of deleting a product together with its items.
type CascadeResult struct {
	Removed      bool
	ItemsDeleted int64
}
