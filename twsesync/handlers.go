package twsesync

import (
	"context"
	"net/http"
	"sync"

	"github.com/aiotlab/webserver_backend/config"
	"github.com/aiotlab/webserver_backend/datatable"
	"github.com/aiotlab/webserver_backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
)

// StockRow is the stock grid projection. JSON keys match the widget's
// columns[n][data] names.
type StockRow struct {
	TradeDate        string          `json:"tradeDate"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	TradeVolume      int64           `json:"tradeVolume"`
	TradeValue       int64           `json:"tradeValue"`
	OpeningPrice     decimal.Decimal `json:"openingPrice"`
	HighestPrice     decimal.Decimal `json:"highestPrice"`
	LowestPrice      decimal.Decimal `json:"lowestPrice"`
	ClosingPrice     decimal.Decimal `json:"closingPrice"`
	Change           decimal.Decimal `json:"change"`
	TransactionCount int             `json:"transactionCount"`
}

func stockDescriptor() datatable.Descriptor {
	return datatable.Descriptor{
		Base: func(db *gorm.DB) *gorm.DB {
			return db.Model(&models.ExchangeReportStockDay{})
		},
		SearchExprs: []string{"code", "name", "trade_date"},
		SortMap: map[string]string{
			"tradeDate":    "trade_date",
			"code":         "code",
			"name":         "name",
			"tradeVolume":  "trade_volume",
			"closingPrice": "closing_price",
			"change":       "change",
		},
		DefaultSort: "trade_date",
		TieBreak:    "code",
		Scan: func(page *gorm.DB) (interface{}, error) {
			var rows []StockRow
			err := page.Select(`trade_date, code, name, trade_volume, trade_value,
				opening_price, highest_price, lowest_price, closing_price,
				` + "`change`" + `, transaction_count`).Scan(&rows).Error
			return rows, err
		},
	}
}

// StockGridHandler serves the stock day grid (widget POST convention).
func StockGridHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := datatable.BindRequest(c)
		resp, err := datatable.Execute(c.Request.Context(), config.GetDB(), req, stockDescriptor())
		if err != nil {
			config.LogError(config.GetLogger(), moduleName, "StockGridHandler", "execute stock grid", req, err)
		}
		datatable.Respond(c, resp, err)
	}
}

var (
	lastRunMu sync.Mutex
	lastRun   *RunResult
	lastErr   string
)

func recordRun(result *RunResult, err error) {
	lastRunMu.Lock()
	defer lastRunMu.Unlock()
	if result != nil {
		lastRun = result
	}
	if err != nil {
		lastErr = err.Error()
	} else {
		lastErr = ""
	}
}

// TriggerSyncHandler runs one sync pass inline and reports its outcome.
// A concurrent run (lock held elsewhere) answers 409 instead of queuing.
func TriggerSyncHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := RunSync(c.Request.Context())
		recordRun(result, err)
		if err == ErrRunInProgress {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "sync failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
	}
}

// SyncStatusHandler reports the most recent run seen by this process.
func SyncStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		lastRunMu.Lock()
		defer lastRunMu.Unlock()
		c.JSON(http.StatusOK, gin.H{"lastRun": lastRun, "lastError": lastErr})
	}
}

// RunAndRecord is the scheduler entry point: one pass, outcome recorded for
// the status endpoint. A skipped overlapping run is logged, not treated as a
// failure.
func RunAndRecord(ctx context.Context) {
	result, err := RunSync(ctx)
	recordRun(result, err)
	if err == ErrRunInProgress {
		config.GetLogger().WithField("module", moduleName).Info("sync run skipped, lock held elsewhere")
		return
	}
	if err != nil {
		config.LogError(config.GetLogger(), moduleName, "RunAndRecord", "scheduled sync run", nil, err)
	}
}
