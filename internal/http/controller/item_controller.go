package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
	"github.com/iyhunko/catalog-service/internal/service"
)

// ItemService is the subset of *service.ItemService used by ItemController.
type ItemService interface {
	CreateItem(ctx context.Context, in service.CreateItemInput) (*model.Item, error)
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) (bool, error)
}

// ItemController handles HTTP requests for item operations.
type ItemController struct {
	itemService ItemService
}

func NewItemController(itemService ItemService) *ItemController {
	return &ItemController{itemService: itemService}
}

type CreateItemRequest struct {
	ProductID int64  `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Stock     int    `json:"stock"`
}

type UpdateItemRequest struct {
	Size  model.Optional[string] `json:"size"`
	Color model.Optional[string] `json:"color"`
	Stock model.Optional[int]    `json:"stock"`
}

type ItemResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
	Stock     int     `json:"stock"`
}

func (ic *ItemController) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, err)
		return
	}

	created, err := ic.itemService.CreateItem(c.Request.Context(), service.CreateItemInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(created))
}

func (ic *ItemController) GetItem(c *gin.Context) {
	id, ok := parseID(c, "item")
	if !ok {
		return
	}

	item, err := ic.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

func (ic *ItemController) UpdateItem(c *gin.Context) {
	id, ok := parseID(c, "item")
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, err)
		return
	}

	updated, err := ic.itemService.UpdateItem(c.Request.Context(), id, model.ItemPatch(req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, toItemResponse(updated))
}

func (ic *ItemController) DeleteItem(c *gin.Context) {
	id, ok := parseID(c, "item")
	if !ok {
		return
	}

	removed, err := ic.itemService.DeleteItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !removed {
		respondError(c, repository.NewNotFoundError(repository.ItemResource, id))
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Item deleted"})
}

func toItemResponse(item *model.Item) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Size:      item.Size,
		Color:     item.Color,
		Stock:     item.Stock,
	}
}
