package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated is a Prometheus counter for tracking the total number of products created.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_created_total",
		Help: "The total number of products created",
	})

	// ProductsUpdated counts successful product updates.
	ProductsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_updated_total",
		Help: "The total number of products updated",
	})

	// ProductsDeleted is a Prometheus counter for tracking the total number of products deleted.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_deleted_total",
		Help: "The total number of products deleted",
	})

	// CascadedItemsDeleted counts items removed together with their product.
	CascadedItemsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cascaded_items_deleted_total",
		Help: "The total number of items deleted by product cascades",
	})

	ItemsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_items_created_total",
		Help: "The total number of items created",
	})

	ItemsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_items_updated_total",
		Help: "The total number of items updated",
	})

	ItemsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_items_deleted_total",
		Help: "The total number of items deleted",
	})

	// HTTPRequestDuration observes request latency by route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_http_request_duration_seconds",
		Help:    "Duration of HTTP requests handled by the catalog API",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
