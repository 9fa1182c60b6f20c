package twsesync

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"

	"github.com/aiotlab/webserver_backend/config"
	"github.com/aiotlab/webserver_backend/models"
	"github.com/aiotlab/webserver_backend/utils"
	"gorm.io/gorm"
)

const (
	moduleName  = "twsesync"
	runLockKey  = "twse-sync:stock-day-all"
	runLockTTL  = 10 * time.Minute
	insertBatch = 500
)

// ErrRunInProgress is returned when another instance holds the run lock.
// Overlapping runs are skipped rather than queued.
var ErrRunInProgress = errors.New("stock day sync already running")

// RunSync executes one fetch-and-reconcile pass of the STOCK_DAY_ALL feed.
// The whole snapshot carries a single trading date, so the run loads every
// existing row for that date up front and decides insert vs update in memory.
// All writes land in one transaction; a failed fetch writes nothing.
func RunSync(ctx context.Context) (*RunResult, error) {
	logger := config.GetLogger()
	started := time.Now()

	release, err := obtainRunLock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	client := newTwseClient()
	records, err := client.fetchStockDayAll(ctx)
	if err != nil {
		config.LogError(logger, moduleName, "RunSync", "fetch stock day snapshot", nil, err)
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("feed returned no records")
	}

	partitionDate := firstDatedRecord(records)
	if partitionDate == "" {
		return nil, errors.New("feed carries no trade date")
	}

	db := config.GetDB().WithContext(ctx)

	var existing []models.ExchangeReportStockDay
	if err := db.Where("trade_date = ?", partitionDate).Find(&existing).Error; err != nil {
		config.LogError(logger, moduleName, "RunSync", "load existing partition", partitionDate, err)
		return nil, err
	}
	existingByCode := make(map[string]models.ExchangeReportStockDay, len(existing))
	for _, row := range existing {
		existingByCode[row.Code] = row
	}

	updates, inserts := reconcile(existingByCode, records, partitionDate)

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range updates {
			if err := tx.Save(&updates[i]).Error; err != nil {
				return err
			}
		}
		if len(inserts) > 0 {
			if err := tx.CreateInBatches(inserts, insertBatch).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		config.LogError(logger, moduleName, "RunSync", "commit partition", partitionDate, err)
		return nil, err
	}

	result := &RunResult{
		PartitionDate: partitionDate,
		Fetched:       len(records),
		Inserted:      len(inserts),
		Updated:       len(updates),
		DurationMs:    time.Since(started).Milliseconds(),
		FinishedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	logger.WithField("module", moduleName).
		WithField("partitionDate", result.PartitionDate).
		WithField("fetched", result.Fetched).
		WithField("inserted", result.Inserted).
		WithField("updated", result.Updated).
		Info("stock day sync finished")
	return result, nil
}

// obtainRunLock takes the distributed run lock. When redis is not configured
// the lock degrades to a no-op and single-instance deployments run unguarded.
func obtainRunLock(ctx context.Context) (func(), error) {
	locker := config.GetRedisLock()
	if locker == nil {
		return func() {}, nil
	}
	lock, err := locker.Obtain(ctx, runLockKey, runLockTTL, nil)
	if err == redislock.ErrNotObtained {
		return nil, ErrRunInProgress
	} else if err != nil {
		return nil, err
	}
	return func() { _ = lock.Release(ctx) }, nil
}

// firstDatedRecord returns the trade date of the first record that has one.
// The snapshot is single-day, so any dated record identifies the partition.
func firstDatedRecord(records []stockDayRecord) string {
	for _, rec := range records {
		if rec.Date != "" {
			return rec.Date
		}
	}
	return ""
}

// reconcile splits the snapshot into rows to update in place and rows to
// insert, keyed by security code within the partition date. Pure function,
// no database access.
func reconcile(existingByCode map[string]models.ExchangeReportStockDay, records []stockDayRecord, partitionDate string) (updates, inserts []models.ExchangeReportStockDay) {
	for _, rec := range records {
		if rec.Code == "" {
			continue
		}
		if row, ok := existingByCode[rec.Code]; ok {
			applyFeedValues(&row, rec)
			updates = append(updates, row)
		} else {
			row := models.ExchangeReportStockDay{
				TradeDate: partitionDate,
				Code:      rec.Code,
			}
			applyFeedValues(&row, rec)
			inserts = append(inserts, row)
		}
	}
	return updates, inserts
}

// applyFeedValues copies the feed numerics onto the entity. The name updates
// too in case a security was renamed between runs.
func applyFeedValues(row *models.ExchangeReportStockDay, rec stockDayRecord) {
	row.Name = rec.Name
	row.TradeVolume = utils.ParseFeedInt64(rec.TradeVolume)
	row.TradeValue = utils.ParseFeedInt64(rec.TradeValue)
	row.OpeningPrice = utils.ParseFeedDecimal(rec.OpeningPrice)
	row.HighestPrice = utils.ParseFeedDecimal(rec.HighestPrice)
	row.LowestPrice = utils.ParseFeedDecimal(rec.LowestPrice)
	row.ClosingPrice = utils.ParseFeedDecimal(rec.ClosingPrice)
	row.Change = utils.ParseFeedDecimal(rec.Change)
	row.TransactionCount = utils.ParseFeedInt(rec.Transaction)
}
