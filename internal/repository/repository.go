package repository

import (
	"context"

	"github.com/iyhunko/catalog-service/internal/model"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	ListWithItems(ctx context.Context) ([]model.ProductWithItems, error)
	Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) (*model.Item, error)
	FindByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteByProductID(ctx context.Context, productID int64) (int64, error)
}

// CascadeDeleter removes a product and every item referencing it as one atomic operation.
type CascadeDeleter interface {
	DeleteProductWithItems(ctx context.Context, productID int64) (model.CascadeResult, error)
}
