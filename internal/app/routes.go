package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/middleware"
	"github.com/simp-lee/photostore/internal/pkg"
)

// APIPrefix is the mount point of every module route.
const APIPrefix = "/api/v1"

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules []Module
	DB      *gorm.DB
	// Guard runs in front of every API route. Nil leaves the API open.
	Guard gin.HandlerFunc
	// Metrics is exposed on MetricsPath when set.
	Metrics     *middleware.Metrics
	MetricsPath string
}

// RegisterRoutes registers all application routes on the given gin.Engine.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}

	r.GET("/health", healthHandler(deps.DB))
	if deps.Metrics != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, deps.Metrics.Handler())
	}

	api := r.Group(APIPrefix)
	if deps.Guard != nil {
		api.Use(deps.Guard)
	}
	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(api)
	}

	r.NoRoute(noRouteHandler())

	return nil
}

// healthHandler returns a handler that pings the database and reports status.
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "ok"
		status := "ok"
		code := http.StatusOK

		if err := pingDB(c.Request.Context(), db); err != nil {
			dbStatus = "error"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status": status,
			"components": gin.H{
				"database": dbStatus,
			},
		})
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database not configured")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

var errRouteNotFound = domain.NewAppError(domain.CodeNotFound, "Route not found", nil)

// noRouteHandler answers unknown routes with the JSON error envelope.
func noRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		pkg.Error(c, errRouteNotFound)
	}
}
