package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
	"github.com/iyhunko/catalog-service/internal/service"
)

// ProductService is the subset of *service.ProductService used by ProductController.
type ProductService interface {
	CreateProduct(ctx context.Context, in service.CreateProductInput) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.ProductWithItems, error)
	UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
}

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	productService ProductService
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// CreateProductRequest represents the request body for creating a product.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateProductRequest only carries the fields present in the payload.
type UpdateProductRequest struct {
	Name        model.Optional[string] `json:"name"`
	Description model.Optional[string] `json:"description"`
}

// ProductResponse represents the response body for a product.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ProductItemResponse is an item nested in a product listing.
type ProductItemResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Stock     int    `json:"stock"`
}

// ProductWithItemsResponse is one entry of the product listing.
type ProductWithItemsResponse struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Description *string               `json:"description"`
	Items       []ProductItemResponse `json:"items"`
}

// CreateProduct handles the HTTP POST request for creating a new product.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, err)
		return
	}

	createdProduct, err := pc.productService.CreateProduct(c.Request.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(createdProduct))
}

// ListProducts handles the HTTP GET request listing every product with its items.
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.productService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ProductWithItemsResponse, 0, len(products))
	for _, product := range products {
		response = append(response, toProductWithItemsResponse(product))
	}

	c.JSON(http.StatusOK, response)
}

// UpdateProduct handles the HTTP PUT request. Only the fields present in the body change.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, err)
		return
	}

	updated, err := pc.productService.UpdateProduct(c.Request.Context(), id, model.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, toProductResponse(updated))
}

// DeleteProduct handles the HTTP DELETE request for deleting a product and its items.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	removed, err := pc.productService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !removed {
		respondError(c, repository.NewNotFoundError(repository.ProductResource, id))
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Product and associated items deleted"})
}

func toProductResponse(product *model.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		CreatedAt:   product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   product.UpdatedAt.Format(time.RFC3339),
	}
}

func toProductWithItemsResponse(product model.ProductWithItems) ProductWithItemsResponse {
	items := make([]ProductItemResponse, 0, len(product.Items))
	for _, item := range product.Items {
		items = append(items, ProductItemResponse(item))
	}
	return ProductWithItemsResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Items:       items,
	}
}
