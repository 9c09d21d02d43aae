package service

import (
	"context"
	"log/slog"

	"github.com/iyhunko/catalog-service/internal/metrics"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
	"github.com/iyhunko/catalog-service/internal/sqs"
)

// CreateProductInput carries the fields accepted when creating a product.
type CreateProductInput struct {
	Name        string
	Description *string
}

type ProductService struct {
	repo     repository.ProductRepository
	cascade  repository.CascadeDeleter
	notifier Notifier
}

// NewProductService wires the product service. notifier may be nil.
func NewProductService(repo repository.ProductRepository, cascade repository.CascadeDeleter, notifier Notifier) *ProductService {
	return &ProductService{
		repo:     repo,
		cascade:  cascade,
		notifier: notifier,
	}
}

func (ps *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*model.Product, error) {
	if in.Name == "" {
		return nil, NewValidationError("name", "Name is required")
	}

	product := &model.Product{
		Name:        in.Name,
		Description: in.Description,
	}
	product.InitMeta()

	created, err := ps.repo.Create(ctx, product)
	if err != nil {
		slog.Error("Failed to create product", slog.Any("err", err))
		return nil, err
	}

	metrics.ProductsCreated.Inc()
	slog.Info("Product created", slog.Int64("product_id", created.ID))

	notify(ctx, ps.notifier, sqs.CatalogMessage{
		Action:    sqs.ActionProductCreated,
		ProductID: created.ID,
		Name:      created.Name,
	})

	return created, nil
}

// ListProducts returns every product with its items nested.
func (ps *ProductService) ListProducts(ctx context.Context) ([]model.ProductWithItems, error) {
	products, err := ps.repo.ListWithItems(ctx)
	if err != nil {
		slog.Error("Failed to list products", slog.Any("err", err))
		return nil, err
	}
	return products, nil
}

// UpdateProduct overwrites the fields present in patch. Name may be omitted but never
// cleared; an explicit null description clears it.
func (ps *ProductService) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	if patch.Name.Present() {
		if patch.Name.Null {
			return nil, NewValidationError("name", "Name cannot be null")
		}
		if patch.Name.Value == "" {
			return nil, NewValidationError("name", "Name is required")
		}
	}

	updated, err := ps.repo.Update(ctx, id, patch)
	if err != nil {
		slog.Error("Failed to update product", slog.Int64("product_id", id), slog.Any("err", err))
		return nil, err
	}

	metrics.ProductsUpdated.Inc()
	slog.Info("Product updated", slog.Int64("product_id", id))

	notify(ctx, ps.notifier, sqs.CatalogMessage{
		Action:    sqs.ActionProductUpdated,
		ProductID: updated.ID,
		Name:      updated.Name,
	})

	return updated, nil
}

// DeleteProduct removes the product and all of its items in one transaction.
func (ps *ProductService) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	result, err := ps.cascade.DeleteProductWithItems(ctx, id)
	if err != nil {
		slog.Error("Failed to delete product", slog.Int64("product_id", id), slog.Any("err", err))
		return false, err
	}

	metrics.CascadedItemsDeleted.Add(float64(result.ItemsDeleted))
	if !result.Removed {
		slog.Info("Product already gone", slog.Int64("product_id", id))
		return false, nil
	}

	metrics.ProductsDeleted.Inc()
	slog.Info("Product deleted",
		slog.Int64("product_id", id),
		slog.Int64("items_deleted", result.ItemsDeleted),
	)

	notify(ctx, ps.notifier, sqs.CatalogMessage{
		Action:       sqs.ActionProductDeleted,
		ProductID:    id,
		ItemsDeleted: result.ItemsDeleted,
	})

	return true, nil
}
