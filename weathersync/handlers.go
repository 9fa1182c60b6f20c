package weathersync

import (
	"net/http"
	"time"

	"github.com/aiotlab/webserver_backend/config"

	"github.com/gin-gonic/gin"
)

const moduleName = "weathersync"

type countyResult struct {
	County   string `json:"county"`
	Stations int    `json:"stations"`
	Error    string `json:"error,omitempty"`
}

// RefreshWeatherHandler fetches current observations for every configured
// county pair and stores them through the shared database handle. One
// county's fetch failure is reported in its result entry and does not stop
// the remaining counties.
func RefreshWeatherHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		stations := configuredStations()
		if len(stations) == 0 {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "no weather stations configured", "results": []countyResult{}})
			return
		}

		client, err := newCwaClient()
		if err != nil {
			config.LogError(logger, moduleName, "RefreshWeatherHandler", "build cwa client", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "weather service not configured"})
			return
		}

		ctx := c.Request.Context()
		db := config.GetDB().WithContext(ctx)
		results := make([]countyResult, 0, len(stations))

		for _, county := range stations {
			ids := []string{county.LowlandStationID}
			if county.MountainStationID != "" {
				ids = append(ids, county.MountainStationID)
			}

			payload, err := client.fetchObservations(ctx, ids)
			if err != nil {
				config.LogError(logger, moduleName, "RefreshWeatherHandler", "fetch county observations", county.County, err)
				results = append(results, countyResult{County: county.County, Error: err.Error()})
				continue
			}

			rows := mapStations(county.County, payload.Records.Station, time.Now())
			if len(rows) > 0 {
				if err := db.Create(&rows).Error; err != nil {
					config.LogError(logger, moduleName, "RefreshWeatherHandler", "store county observations", county.County, err)
					results = append(results, countyResult{County: county.County, Error: err.Error()})
					continue
				}
			}
			results = append(results, countyResult{County: county.County, Stations: len(rows)})
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
	}
}
