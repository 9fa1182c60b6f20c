package weathersync

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/aiotlab/webserver_backend/models"
)

const missingSentinel = -99

// mapStations converts feed stations into observation rows. County comes from
// the fetch configuration since GeoInfo occasionally omits it.
func mapStations(county string, stations []cwaStation, receivedAt time.Time) []models.WeatherObservation {
	rows := make([]models.WeatherObservation, 0, len(stations))
	for _, st := range stations {
		countyName := st.GeoInfo.CountyName
		if countyName == "" {
			countyName = county
		}
		row := models.WeatherObservation{
			StationId:        st.StationID,
			StationName:      st.StationName,
			CountyName:       countyName,
			TownName:         st.GeoInfo.TownName,
			Altitude:         feedFloat(st.GeoInfo.StationAltitude),
			ObservationTime:  feedTime(st.ObsTime.DateTime),
			Weather:          st.WeatherElement.Weather,
			WindDirection:    feedFloat(st.WeatherElement.WindDirection),
			WindSpeed:        feedFloat(st.WeatherElement.WindSpeed),
			AirTemperature:   feedFloat(st.WeatherElement.AirTemperature),
			RelativeHumidity: feedFloat(st.WeatherElement.RelativeHumidity),
			AirPressure:      feedFloat(st.WeatherElement.AirPressure),
			Precipitation:    feedFloat(st.WeatherElement.Now.Precipitation),
			GustSpeed:        feedFloat(st.WeatherElement.GustInfo.PeakGustSpeed),
			GustDirection:    feedFloat(st.WeatherElement.GustInfo.OccurredAt.WindDirection),
			GustTime:         feedTime(st.WeatherElement.GustInfo.OccurredAt.DateTime),
			DailyHighTemp:    feedFloat(st.WeatherElement.DailyExtreme.DailyHigh.TemperatureInfo.AirTemperature),
			DailyHighTime:    feedTime(st.WeatherElement.DailyExtreme.DailyHigh.TemperatureInfo.OccurredAt.DateTime),
			DailyLowTemp:     feedFloat(st.WeatherElement.DailyExtreme.DailyLow.TemperatureInfo.AirTemperature),
			DailyLowTime:     feedTime(st.WeatherElement.DailyExtreme.DailyLow.TemperatureInfo.OccurredAt.DateTime),
			DataReceivedTime: receivedAt,
		}
		if len(st.GeoInfo.Coordinates) > 1 {
			// The second coordinate set is WGS84.
			wgs84 := st.GeoInfo.Coordinates[1]
			row.Latitude = feedFloat(wgs84.StationLatitude)
			row.Longitude = feedFloat(wgs84.StationLongitude)
		}
		rows = append(rows, row)
	}
	return rows
}

// feedFloat parses a feed numeric. Empty, malformed, and the -99 missing
// sentinel all map to nil.
func feedFloat(n json.Number) *float64 {
	s := n.String()
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == missingSentinel {
		return nil
	}
	return &v
}

// feedTime parses the feed's RFC3339 timestamps. The agency uses "-99" for
// missing times.
func feedTime(s string) *time.Time {
	if s == "" || s == "-99" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
