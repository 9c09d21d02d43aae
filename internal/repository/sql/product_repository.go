package sql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
)

// ProductRepository implements repository.ProductRepository on PostgreSQL.
type ProductRepository struct {
	db  *sql.DB
	txn *sql.Tx
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// getExecutor returns the active executor (transaction if exists, otherwise db)
func (r *ProductRepository) getExecutor() dbExecutor {
	if r.txn != nil {
		return r.txn
	}
	return r.db
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var (
		product     model.Product
		description sql.NullString
	)
	if err := row.Scan(&product.ID, &product.Name, &description, &product.CreatedAt, &product.UpdatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		product.Description = &description.String
	}
	return &product, nil
}

// Create inserts a new product into the database and returns the stored row.
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.CreatedAt.IsZero() {
		product.InitMeta()
	}

	query := `INSERT INTO product (name, description, created_at, updated_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, name, description, created_at, updated_at`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, repository.NewDatabaseError("prepare insert statement", err)
	}
	defer stmt.Close()

	created, err := scanProduct(stmt.QueryRowContext(ctx, product.Name, product.Description, product.CreatedAt, product.UpdatedAt))
	if err != nil {
		return nil, repository.NewDatabaseError("insert product", err)
	}

	return created, nil
}

// FindByID retrieves a single product by ID.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM product WHERE id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, repository.NewDatabaseError("prepare select statement", err)
	}
	defer stmt.Close()

	product, err := scanProduct(stmt.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewNotFoundError(repository.ProductResource, id)
		}
		return nil, repository.NewDatabaseError("query product", err)
	}

	return product, nil
}

// ListWithItems retrieves every product with its items in a single query.
// Products are ordered by id and items by id within their product.
func (r *ProductRepository) ListWithItems(ctx context.Context) ([]model.ProductWithItems, error) {
	query := `SELECT p.id, p.name, p.description, i.id, i.product_id, i.size, i.color, i.stock
	          FROM product p
	          LEFT JOIN item i ON i.product_id = p.id
	          ORDER BY p.id, i.id`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, repository.NewDatabaseError("prepare select statement", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, repository.NewDatabaseError("query products", err)
	}
	defer rows.Close()

	products := make([]model.ProductWithItems, 0)
	for rows.Next() {
		var (
			productID   int64
			name        string
			description sql.NullString
			itemID      sql.NullInt64
			itemProduct sql.NullInt64
			size        sql.NullString
			color       sql.NullString
			stock       sql.NullInt64
		)
		if err := rows.Scan(&productID, &name, &description, &itemID, &itemProduct, &size, &color, &stock); err != nil {
			return nil, repository.NewDatabaseError("scan product", err)
		}

		// rows arrive grouped by product id
		if len(products) == 0 || products[len(products)-1].ID != productID {
			p := model.ProductWithItems{
				ID:    productID,
				Name:  name,
				Items: make([]model.ProductItem, 0),
			}
			if description.Valid {
				p.Description = &description.String
			}
			products = append(products, p)
		}

		if !itemID.Valid {
			continue
		}
		current := &products[len(products)-1]
		current.Items = append(current.Items, model.ProductItem{
			ID:        itemID.Int64,
			ProductID: itemProduct.Int64,
			Size:      size.String,
			Color:     color.String,
			Stock:     int(stock.Int64),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, repository.NewDatabaseError("iterate rows", err)
	}

	return products, nil
}

// Update applies a partial update to a product, refreshes UpdatedAt and returns the stored row.
func (r *ProductRepository) Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(product)
	product.Touch(time.Now().UTC())

	query := `UPDATE product SET name = $1, description = $2, updated_at = $3 WHERE id = $4`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, repository.NewDatabaseError("prepare update statement", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, product.Name, product.Description, product.UpdatedAt, id)
	if err != nil {
		return nil, repository.NewDatabaseError("update product", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, repository.NewDatabaseError("get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, repository.NewNotFoundError(repository.ProductResource, id)
	}

	return r.FindByID(ctx, id)
}

// DeleteByID deletes the product row only. Callers that need the items removed as well
// go through TransactionalRepository.DeleteProductWithItems.
func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM product WHERE id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return false, repository.NewDatabaseError("prepare delete statement", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return false, repository.NewDatabaseError("delete product", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, repository.NewDatabaseError("get rows affected", err)
	}

	return rowsAffected > 0, nil
}
