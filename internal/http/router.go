package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iyhunko/catalog-service/internal/http/controller"
	"github.com/iyhunko/catalog-service/internal/http/middleware"
)

func InitRouter(server *gin.Engine, ctr *controller.Controller, productCtr *controller.ProductController, itemCtr *controller.ItemController) *gin.Engine {
	server.Use(middleware.RequestID())
	server.Use(middleware.Logger())
	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery())
	server.Use(middleware.CORS())

	server.GET("/ping", ctr.Ping)
	server.GET("/health", ctr.Health)

	products := server.Group("/product")
	{
		products.POST("", productCtr.CreateProduct)
		products.GET("", productCtr.ListProducts)
		products.PUT("/:id", productCtr.UpdateProduct)
		products.DELETE("/:id", productCtr.DeleteProduct)
	}

	items := server.Group("/item")
	{
		items.POST("", itemCtr.CreateItem)
		items.GET("/:id", itemCtr.GetItem)
		items.PUT("/:id", itemCtr.UpdateItem)
		items.DELETE("/:id", itemCtr.DeleteItem)
	}

	return server
}
