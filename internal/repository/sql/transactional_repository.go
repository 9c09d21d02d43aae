package sql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
)

// TransactionalRepository provides methods to work with multiple repositories in a single transaction
type TransactionalRepository struct {
	db *sql.DB
}

var _ repository.CascadeDeleter = (*TransactionalRepository)(nil)

// NewTransactionalRepository creates a new TransactionalRepository
func NewTransactionalRepository(db *sql.DB) *TransactionalRepository {
	return &TransactionalRepository{db: db}
}

// TxRepositories bundles repositories bound to one open transaction.
type TxRepositories struct {
	Products *ProductRepository
	Items    *ItemRepository
}

// WithinTransaction begins a transaction, passes transaction-bound repositories to fn and
// commits when fn succeeds. Any error from fn rolls the transaction back.
func (tr *TransactionalRepository) WithinTransaction(ctx context.Context, fn func(repos *TxRepositories) error) error {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		return repository.NewDatabaseError("begin transaction", err)
	}

	repos := &TxRepositories{
		Products: &ProductRepository{db: tr.db, txn: tx},
		Items:    &ItemRepository{db: tr.db, txn: tx},
	}

	if err := fn(repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return repository.NewDatabaseError("rollback transaction", fmt.Errorf("%w (original error: %v)", rbErr, err))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return repository.NewDatabaseError("commit transaction", err)
	}

	return nil
}

// DeleteProductWithItems deletes a product and all of its items atomically.
// The product is looked up first so a missing id yields NotFoundError; after that the items
// and then the product row are deleted in one transaction.
func (tr *TransactionalRepository) DeleteProductWithItems(ctx context.Context, productID int64) (model.CascadeResult, error) {
	if _, err := NewProductRepository(tr.db).FindByID(ctx, productID); err != nil {
		return model.CascadeResult{}, err
	}

	var result model.CascadeResult
	err := tr.WithinTransaction(ctx, func(repos *TxRepositories) error {
		itemsDeleted, err := repos.Items.DeleteByProductID(ctx, productID)
		if err != nil {
			return err
		}

		removed, err := repos.Products.DeleteByID(ctx, productID)
		if err != nil {
			return err
		}

		result = model.CascadeResult{Removed: removed, ItemsDeleted: itemsDeleted}
		return nil
	})
	if err != nil {
		slog.Error("cascading product delete rolled back", slog.Int64("product_id", productID), slog.Any("err", err))
		return model.CascadeResult{}, err
	}

	return result, nil
}
