package controller_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/catalog-service/internal/http/controller"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestController_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		ping   error
		status int
		body   string
	}{
		{"database up", nil, http.StatusOK, `{"status":"ok","database":"up"}`},
		{"database down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, `{"status":"unavailable","database":"down"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctr := controller.New(pingerFunc(func(context.Context) error { return tt.ping }))
			router := gin.New()
			router.GET("/health", ctr.Health)
			router.GET("/ping", ctr.Ping)

			w := serve(router, http.MethodGet, "/health", "")
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())

			w = serve(router, http.MethodGet, "/ping", "")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
		})
	}
}
