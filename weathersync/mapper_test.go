package weathersync

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFeedFloat(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantNil bool
	}{
		{"23.5", 23.5, false},
		{"0", 0, false},
		{"-99", 0, true},
		{"-99.0", 0, true},
		{"", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got := feedFloat(json.Number(tt.input))
		if tt.wantNil {
			if got != nil {
				t.Errorf("feedFloat(%q) = %v, want nil", tt.input, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("feedFloat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFeedTime(t *testing.T) {
	got := feedTime("2026-08-28T14:00:00+08:00")
	if got == nil {
		t.Fatal("valid timestamp parsed to nil")
	}
	if got.Hour() != 14 {
		t.Fatalf("unexpected hour %d", got.Hour())
	}
	for _, missing := range []string{"", "-99", "not a time"} {
		if feedTime(missing) != nil {
			t.Errorf("feedTime(%q) should be nil", missing)
		}
	}
}

func TestMapStations_PicksWgs84Coordinates(t *testing.T) {
	var station cwaStation
	station.StationID = "466920"
	station.StationName = "臺北"
	station.GeoInfo.TownName = "中正區"
	station.GeoInfo.Coordinates = []cwaCoordinate{
		{CoordinateName: "TWD67", StationLatitude: "25.0357", StationLongitude: "121.5142"},
		{CoordinateName: "WGS84", StationLatitude: "25.0377", StationLongitude: "121.5149"},
	}
	station.ObsTime.DateTime = "2026-08-28T14:00:00+08:00"
	station.WeatherElement.AirTemperature = "-99"
	station.WeatherElement.WindSpeed = "3.2"

	rows := mapStations("臺北市", []cwaStation{station}, time.Now())
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.CountyName != "臺北市" {
		t.Fatalf("county fallback not applied: %q", row.CountyName)
	}
	if row.Latitude == nil || *row.Latitude != 25.0377 {
		t.Fatalf("latitude should come from the second coordinate set, got %v", row.Latitude)
	}
	if row.AirTemperature != nil {
		t.Fatalf("missing sentinel temperature should map to nil, got %v", *row.AirTemperature)
	}
	if row.WindSpeed == nil || *row.WindSpeed != 3.2 {
		t.Fatalf("wind speed lost in mapping, got %v", row.WindSpeed)
	}
}

func TestConfiguredStations(t *testing.T) {
	t.Setenv("CWA_STATIONS", "臺北市:466920,C0A980; 臺中市:467490 ;broken;:missing")
	stations := configuredStations()
	if len(stations) != 2 {
		t.Fatalf("expected 2 stations, got %d (%+v)", len(stations), stations)
	}
	if stations[0].County != "臺北市" || stations[0].MountainStationID != "C0A980" {
		t.Fatalf("first entry parsed wrong: %+v", stations[0])
	}
	if stations[1].County != "臺中市" || stations[1].MountainStationID != "" {
		t.Fatalf("second entry parsed wrong: %+v", stations[1])
	}
}
