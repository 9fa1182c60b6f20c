package weathersync

import "encoding/json"

// Feed shapes for the CWA O-A0001-001 datastore (automatic weather station
// observations). Numerics arrive as JSON strings or numbers depending on the
// station, so json.Number absorbs both. -99 is the agency's missing-value
// sentinel.
type cwaResponse struct {
	Success string `json:"success"`
	Records struct {
		Station []cwaStation `json:"Station"`
	} `json:"records"`
}

type cwaStation struct {
	StationID   string `json:"StationId"`
	StationName string `json:"StationName"`
	GeoInfo     struct {
		CountyName      string          `json:"CountyName"`
		TownName        string          `json:"TownName"`
		StationAltitude json.Number     `json:"StationAltitude"`
		Coordinates     []cwaCoordinate `json:"Coordinates"`
	} `json:"GeoInfo"`
	ObsTime struct {
		DateTime string `json:"DateTime"`
	} `json:"ObsTime"`
	WeatherElement struct {
		Weather          string      `json:"Weather"`
		WindDirection    json.Number `json:"WindDirection"`
		WindSpeed        json.Number `json:"WindSpeed"`
		AirTemperature   json.Number `json:"AirTemperature"`
		RelativeHumidity json.Number `json:"RelativeHumidity"`
		AirPressure      json.Number `json:"AirPressure"`
		Now              struct {
			Precipitation json.Number `json:"Precipitation"`
		} `json:"Now"`
		GustInfo struct {
			PeakGustSpeed json.Number `json:"PeakGustSpeed"`
			OccurredAt    struct {
				WindDirection json.Number `json:"WindDirection"`
				DateTime      string      `json:"DateTime"`
			} `json:"Occurred_at"`
		} `json:"GustInfo"`
		DailyExtreme struct {
			DailyHigh struct {
				TemperatureInfo cwaTemperatureInfo `json:"TemperatureInfo"`
			} `json:"DailyHigh"`
			DailyLow struct {
				TemperatureInfo cwaTemperatureInfo `json:"TemperatureInfo"`
			} `json:"DailyLow"`
		} `json:"DailyExtreme"`
	} `json:"WeatherElement"`
}

type cwaCoordinate struct {
	CoordinateName   string      `json:"CoordinateName"`
	StationLatitude  json.Number `json:"StationLatitude"`
	StationLongitude json.Number `json:"StationLongitude"`
}

type cwaTemperatureInfo struct {
	AirTemperature json.Number `json:"AirTemperature"`
	OccurredAt     struct {
		DateTime string `json:"DateTime"`
	} `json:"Occurred_at"`
}

// countyStations pairs a county with its lowland and mountain station ids.
type countyStations struct {
	County            string
	LowlandStationID  string
	MountainStationID string
}
