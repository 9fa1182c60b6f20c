package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aiotlab/webserver_backend/auth"
	"github.com/aiotlab/webserver_backend/config"
	"github.com/aiotlab/webserver_backend/middlewares"
	"github.com/aiotlab/webserver_backend/models"
	"github.com/aiotlab/webserver_backend/northwind"
	"github.com/aiotlab/webserver_backend/twsesync"
	"github.com/aiotlab/webserver_backend/utils"
	"github.com/aiotlab/webserver_backend/weathersync"
)

const defaultPort = "8080"

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.Use(func(c *gin.Context) {
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	corsConfig := cors.DefaultConfig()
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	corsConfig.AllowCredentials = true

	r.Use(cors.New(corsConfig))
	r.Use(middlewares.AuthMiddleware())
	r.Use(requestLogger(logger))
	r.Use(gin.Recovery())

	// Accounts
	r.POST("/api/auth/signup", auth.SignupHandler())
	r.POST("/api/auth/signin", auth.SigninHandler())

	// Order screen
	r.POST("/api/orders/grid", northwind.OrderGridHandler())
	r.GET("/api/orders/export", northwind.ExportOrdersHandler())
	r.GET("/api/orders/:id", northwind.OrderDetailHandler())
	r.POST("/api/orders", middlewares.RequireAuth(), northwind.CreateOrderHandler())
	r.PUT("/api/orders/:id", middlewares.RequireAuth(), northwind.EditOrderHandler())
	r.DELETE("/api/orders/:id", middlewares.RequireAuth(), northwind.DeleteOrderHandler())
	r.GET("/api/lookup/customers", northwind.CustomerLookupHandler())
	r.GET("/api/lookup/employees", northwind.EmployeeLookupHandler())
	r.GET("/api/lookup/products", northwind.ProductLookupHandler())

	// Product screen
	r.POST("/api/products/grid", northwind.ProductGridHandler())
	r.POST("/api/products", middlewares.RequireAuth(), northwind.CreateProductHandler())
	r.PUT("/api/products/:id", middlewares.RequireAuth(), northwind.UpdateProductHandler())

	// Customer screen
	r.POST("/api/customers/grid", northwind.CustomerGridHandler())
	r.POST("/api/customers", middlewares.RequireAuth(), northwind.CreateCustomerHandler())
	r.PUT("/api/customers/:id", middlewares.RequireAuth(), northwind.UpdateCustomerHandler())

	// Stock board
	r.POST("/api/stocks/grid", twsesync.StockGridHandler())
	r.GET("/api/stocks/statistics", twsesync.StatisticsHandler())
	r.POST("/api/stocks/sync", middlewares.RequireAuth(), twsesync.TriggerSyncHandler())
	r.GET("/api/stocks/sync/status", twsesync.SyncStatusHandler())

	// Weather
	r.GET("/api/weather/refresh", middlewares.RequireAuth(), weathersync.RefreshWeatherHandler())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()

	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	select {
	case <-sigCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	case err := <-serverErrCh:
		if err != nil && err != http.ErrServerClosed {
			logger.WithFields(logrus.Fields{"field": "server"}).Error(err)
		}
	}
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		logger.WithFields(logrus.Fields{
			"status":         c.Writer.Status(),
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"latency":        latency.String(),
			"correlation_id": cid,
		}).Info("request")
	}
}
