package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
)

// ItemRepository implements repository.ItemRepository on PostgreSQL.
type ItemRepository struct {
	db  *sql.DB
	txn *sql.Tx
}

var _ repository.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository creates a new ItemRepository instance.
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) getExecutor() dbExecutor {
	if r.txn != nil {
		return r.txn
	}
	return r.db
}

func scanItem(row rowScanner) (*model.Item, error) {
	var (
		item  model.Item
		size  sql.NullString
		color sql.NullString
	)
	if err := row.Scan(&item.ID, &item.ProductID, &size, &color, &item.Stock); err != nil {
		return nil, err
	}
	if size.Valid {
		item.Size = &size.String
	}
	if color.Valid {
		item.Color = &color.String
	}
	return &item, nil
}

// Create inserts a new item and returns the stored row including its generated id.
func (r *ItemRepository) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	query := `INSERT INTO item (product_id, size, color, stock)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, product_id, size, color, stock`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, repository.NewDatabaseError("prepare insert statement", err)
	}
	defer stmt.Close()

	created, err := scanItem(stmt.QueryRowContext(ctx, item.ProductID, item.Size, item.Color, item.Stock))
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, repository.NewDatabaseError("insert item", fmt.Errorf("product %d does not exist: %w", item.ProductID, err))
		}
		return nil, repository.NewDatabaseError("insert item", err)
	}

	return created, nil
}

// FindByID retrieves a single item by ID.
func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*model.Item, error) {
	query := `SELECT id, product_id, size, color, stock FROM item WHERE id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, repository.NewDatabaseError("prepare select statement", err)
	}
	defer stmt.Close()

	item, err := scanItem(stmt.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewNotFoundError(repository.ItemResource, id)
		}
		return nil, repository.NewDatabaseError("query item", err)
	}

	return item, nil
}

// Update overwrites the fields present in patch. There is no row lock between the read and
// the write, so concurrent updates of the same item resolve as last writer wins.
func (r *ItemRepository) Update(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error) {
	item, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(item)

	query := `UPDATE item SET size = $1, color = $2, stock = $3 WHERE id = $4`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, repository.NewDatabaseError("prepare update statement", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, item.Size, item.Color, item.Stock, id)
	if err != nil {
		return nil, repository.NewDatabaseError("update item", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, repository.NewDatabaseError("get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, repository.NewNotFoundError(repository.ItemResource, id)
	}

	return item, nil
}

// DeleteByID deletes an item. It looks the item up first so that a missing id is reported
// as NotFoundError; the returned bool tells whether a row was actually removed.
func (r *ItemRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return false, err
	}

	query := `DELETE FROM item WHERE id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return false, repository.NewDatabaseError("prepare delete statement", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return false, repository.NewDatabaseError("delete item", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, repository.NewDatabaseError("get rows affected", err)
	}

	return rowsAffected > 0, nil
}

// DeleteByProductID deletes every item of a product and returns how many rows were removed.
func (r *ItemRepository) DeleteByProductID(ctx context.Context, productID int64) (int64, error) {
	query := `DELETE FROM item WHERE product_id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return 0, repository.NewDatabaseError("prepare delete statement", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, productID)
	if err != nil {
		return 0, repository.NewDatabaseError("delete items", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, repository.NewDatabaseError("get rows affected", err)
	}

	return rowsAffected, nil
}
