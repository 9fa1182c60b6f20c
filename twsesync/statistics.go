package twsesync

import (
	"net/http"
	"time"

	"github.com/aiotlab/webserver_backend/config"
	"github.com/aiotlab/webserver_backend/models"
	"github.com/shopspring/decimal"

	"github.com/gin-gonic/gin"
)

const (
	statisticsCacheKey = "twse:stock-statistics"
	statisticsCacheTTL = time.Minute
)

type chartPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

type stockStatistics struct {
	Date      string       `json:"date"`
	TopVolume []chartPoint `json:"topVolume"`
	TopChange []chartPoint `json:"topChange"`
}

// StatisticsHandler serves the dashboard chart data for the latest trading
// day: top ten by volume and top ten by price change. Cached briefly in redis
// since the underlying partition only changes once per day.
func StatisticsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		var cached stockStatistics
		if hit, err := config.GetRedisObject(statisticsCacheKey, &cached); err == nil && hit {
			c.JSON(http.StatusOK, cached)
			return
		}

		db := config.GetDB().WithContext(c.Request.Context())

		var lastDate string
		err := db.Model(&models.ExchangeReportStockDay{}).
			Order("trade_date DESC").
			Limit(1).
			Pluck("trade_date", &lastDate).Error
		if err != nil {
			config.LogError(logger, moduleName, "StatisticsHandler", "find latest trade date", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "statistics unavailable"})
			return
		}
		if lastDate == "" {
			c.JSON(http.StatusOK, stockStatistics{TopVolume: []chartPoint{}, TopChange: []chartPoint{}})
			return
		}

		var topVolume []chartPoint
		err = db.Model(&models.ExchangeReportStockDay{}).
			Where("trade_date = ?", lastDate).
			Order("trade_volume DESC").
			Limit(10).
			Select("name AS label, trade_volume AS value").
			Scan(&topVolume).Error
		if err != nil {
			config.LogError(logger, moduleName, "StatisticsHandler", "top volume", lastDate, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "statistics unavailable"})
			return
		}

		var topChange []chartPoint
		err = db.Model(&models.ExchangeReportStockDay{}).
			Where("trade_date = ?", lastDate).
			Order("`change` DESC").
			Limit(10).
			Select("name AS label, `change` AS value").
			Scan(&topChange).Error
		if err != nil {
			config.LogError(logger, moduleName, "StatisticsHandler", "top change", lastDate, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "statistics unavailable"})
			return
		}

		stats := stockStatistics{Date: lastDate, TopVolume: topVolume, TopChange: topChange}
		if err := config.SetRedisObject(statisticsCacheKey, stats, statisticsCacheTTL); err != nil {
			config.LogError(logger, moduleName, "StatisticsHandler", "cache statistics", nil, err)
		}
		c.JSON(http.StatusOK, stats)
	}
}
