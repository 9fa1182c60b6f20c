package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aiotlab/webserver_backend/config"
	"github.com/aiotlab/webserver_backend/middlewares"
	"github.com/aiotlab/webserver_backend/models"
	"github.com/aiotlab/webserver_backend/twsesync"
)

const defaultPort = "8081"

// Standalone scheduler for the daily exchange snapshot. The API server can
// trigger runs on demand; this binary owns the periodic cadence so the two
// deployments scale independently. The redis run lock keeps them from racing.
func main() {
	port := os.Getenv("TWSE_SYNC_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/api/stocks/sync/status", twsesync.SyncStatusHandler())
	r.Use(gin.Recovery())

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
	}

	interval := time.Duration(intFromEnv("TWSE_FETCH_INTERVAL_MINUTES", 60)) * time.Minute
	logger.WithFields(logrus.Fields{"interval": interval.String()}).Info("stock day sync scheduler started")

	go func() {
		// One pass at startup, then on the ticker.
		twsesync.RunAndRecord(sigCtx)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-sigCtx.Done():
				return
			case <-ticker.C:
				twsesync.RunAndRecord(sigCtx)
			}
		}
	}()

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

func intFromEnv(key string, def int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
