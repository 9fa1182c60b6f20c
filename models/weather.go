package models

import "time"

type WeatherObservation struct {
	ID               int        `gorm:"primary_key" json:"id"`
	StationId        string     `gorm:"index;size:10" json:"station_id"`
	StationName      string     `gorm:"size:40" json:"station_name"`
	CountyName       string     `gorm:"index;size:20" json:"county_name"`
	TownName         string     `gorm:"size:20" json:"town_name"`
	Altitude         *float64   `json:"altitude"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	ObservationTime  *time.Time `gorm:"index" json:"observation_time"`
	Weather          string     `gorm:"size:30" json:"weather"`
	WindDirection    *float64   `json:"wind_direction"`
	WindSpeed        *float64   `json:"wind_speed"`
	AirTemperature   *float64   `json:"air_temperature"`
	RelativeHumidity *float64   `json:"relative_humidity"`
	AirPressure      *float64   `json:"air_pressure"`
	Precipitation    *float64   `json:"precipitation"`
	GustSpeed        *float64   `json:"gust_speed"`
	GustDirection    *float64   `json:"gust_direction"`
	GustTime         *time.Time `json:"gust_time"`
	DailyHighTemp    *float64   `json:"daily_high_temp"`
	DailyHighTime    *time.Time `json:"daily_high_time"`
	DailyLowTemp     *float64   `json:"daily_low_temp"`
	DailyLowTime     *time.Time `json:"daily_low_time"`
	DataReceivedTime time.Time  `gorm:"autoCreateTime" json:"data_received_time"`
}
