package service

import (
	"context"
	"log/slog"

	"github.com/iyhunko/catalog-service/internal/metrics"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
	"github.com/iyhunko/catalog-service/internal/sqs"
)

// CreateItemInput carries the fields accepted when creating an item.
type CreateItemInput struct {
	ProductID int64
	Color     string
	Size      string
	Stock     int
}

// validate checks the fields in the order clients see them reported.
func (in CreateItemInput) validate() error {
	switch {
	case in.ProductID == 0:
		return NewValidationError("product_id", "Product ID is required")
	case in.Color == "":
		return NewValidationError("color", "Color is required")
	case in.Size == "":
		return NewValidationError("size", "Size is required")
	case in.Stock == 0:
		return NewValidationError("stock", "Stock is required")
	}
	return nil
}

type ItemService struct {
	repo     repository.ItemRepository
	notifier Notifier
}

// NewItemService wires the item service. notifier may be nil.
func NewItemService(repo repository.ItemRepository, notifier Notifier) *ItemService {
	return &ItemService{
		repo:     repo,
		notifier: notifier,
	}
}

func (is *ItemService) CreateItem(ctx context.Context, in CreateItemInput) (*model.Item, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	created, err := is.repo.Create(ctx, &model.Item{
		ProductID: in.ProductID,
		Size:      &in.Size,
		Color:     &in.Color,
		Stock:     in.Stock,
	})
	if err != nil {
		slog.Error("Failed to create item", slog.Int64("product_id", in.ProductID), slog.Any("err", err))
		return nil, err
	}

	metrics.ItemsCreated.Inc()
	slog.Info("Item created", slog.Int64("item_id", created.ID), slog.Int64("product_id", created.ProductID))

	notify(ctx, is.notifier, sqs.CatalogMessage{
		Action:    sqs.ActionItemCreated,
		ProductID: created.ProductID,
		ItemID:    created.ID,
	})

	return created, nil
}

func (is *ItemService) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	item, err := is.repo.FindByID(ctx, id)
	if err != nil {
		if !repository.IsNotFound(err) {
			slog.Error("Failed to get item", slog.Int64("item_id", id), slog.Any("err", err))
		}
		return nil, err
	}
	return item, nil
}

// UpdateItem overwrites the fields present in patch. Stock is NOT NULL in the store so an
// explicit null is rejected.
func (is *ItemService) UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error) {
	if patch.Stock.Present() && patch.Stock.Null {
		return nil, NewValidationError("stock", "Stock cannot be null")
	}

	updated, err := is.repo.Update(ctx, id, patch)
	if err != nil {
		slog.Error("Failed to update item", slog.Int64("item_id", id), slog.Any("err", err))
		return nil, err
	}

	metrics.ItemsUpdated.Inc()
	slog.Info("Item updated", slog.Int64("item_id", id))

	notify(ctx, is.notifier, sqs.CatalogMessage{
		Action:    sqs.ActionItemUpdated,
		ProductID: updated.ProductID,
		ItemID:    updated.ID,
	})

	return updated, nil
}

// DeleteItem reports whether a row was removed. A missing item is a NotFoundError.
func (is *ItemService) DeleteItem(ctx context.Context, id int64) (bool, error) {
	removed, err := is.repo.DeleteByID(ctx, id)
	if err != nil {
		slog.Error("Failed to delete item", slog.Int64("item_id", id), slog.Any("err", err))
		return false, err
	}

	if removed {
		metrics.ItemsDeleted.Inc()
		notify(ctx, is.notifier, sqs.CatalogMessage{
			Action: sqs.ActionItemDeleted,
			ItemID: id,
		})
	}
	slog.Info("Item deleted", slog.Int64("item_id", id), slog.Bool("removed", removed))

	return removed, nil
}
