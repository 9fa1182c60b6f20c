package twsesync

import (
	"testing"

	"github.com/aiotlab/webserver_backend/models"
)

func feedRecord(date, code, name, volume, closing string) stockDayRecord {
	return stockDayRecord{
		Date:         date,
		Code:         code,
		Name:         name,
		TradeVolume:  volume,
		TradeValue:   "1,000",
		OpeningPrice: "10.00",
		HighestPrice: "11.00",
		LowestPrice:  "9.50",
		ClosingPrice: closing,
		Change:       "0.50",
		Transaction:  "123",
	}
}

func TestReconcile_SplitsUpdatesAndInserts(t *testing.T) {
	existing := map[string]models.ExchangeReportStockDay{
		"0050": {ID: 1, TradeDate: "1141126", Code: "0050", Name: "元大台灣50", TradeVolume: 100},
		"2330": {ID: 2, TradeDate: "1141126", Code: "2330", Name: "台積電", TradeVolume: 200},
	}
	records := []stockDayRecord{
		feedRecord("1141126", "2330", "台積電", "75,793,554", "580.00"),
		feedRecord("1141126", "2317", "鴻海", "12,345", "105.50"),
	}

	updates, inserts := reconcile(existing, records, "1141126")

	if len(updates) != 1 || len(inserts) != 1 {
		t.Fatalf("expected 1 update and 1 insert, got %d/%d", len(updates), len(inserts))
	}
	if updates[0].ID != 2 || updates[0].Code != "2330" {
		t.Fatalf("update should keep the existing primary key, got %+v", updates[0])
	}
	if updates[0].TradeVolume != 75793554 {
		t.Fatalf("update should carry the new volume, got %d", updates[0].TradeVolume)
	}
	if inserts[0].Code != "2317" || inserts[0].TradeDate != "1141126" {
		t.Fatalf("insert should be keyed into the partition, got %+v", inserts[0])
	}
	if inserts[0].ID != 0 {
		t.Fatalf("insert must not carry a primary key, got %d", inserts[0].ID)
	}
}

func TestReconcile_SecondIdenticalRunOnlyUpdates(t *testing.T) {
	records := []stockDayRecord{
		feedRecord("1141126", "0050", "元大台灣50", "1,000", "200.00"),
		feedRecord("1141126", "2330", "台積電", "2,000", "580.00"),
	}

	_, firstInserts := reconcile(map[string]models.ExchangeReportStockDay{}, records, "1141126")
	if len(firstInserts) != 2 {
		t.Fatalf("first run should insert every record, got %d", len(firstInserts))
	}

	existing := make(map[string]models.ExchangeReportStockDay, len(firstInserts))
	for i, row := range firstInserts {
		row.ID = i + 1
		existing[row.Code] = row
	}

	updates, inserts := reconcile(existing, records, "1141126")
	if len(inserts) != 0 {
		t.Fatalf("second identical run must insert nothing, got %d", len(inserts))
	}
	if len(updates) != 2 {
		t.Fatalf("second identical run should update every record, got %d", len(updates))
	}
}

func TestReconcile_SkipsRecordsWithoutCode(t *testing.T) {
	records := []stockDayRecord{
		feedRecord("1141126", "", "無代號", "1", "1"),
		feedRecord("1141126", "0050", "元大台灣50", "1", "1"),
	}
	updates, inserts := reconcile(map[string]models.ExchangeReportStockDay{}, records, "1141126")
	if len(updates) != 0 || len(inserts) != 1 {
		t.Fatalf("codeless records must be dropped, got %d/%d", len(updates), len(inserts))
	}
}

func TestFirstDatedRecord(t *testing.T) {
	tests := []struct {
		name    string
		records []stockDayRecord
		want    string
	}{
		{"first record dated", []stockDayRecord{{Date: "1141126"}, {Date: "1141127"}}, "1141126"},
		{"skips empty dates", []stockDayRecord{{Date: ""}, {Date: "1141126"}}, "1141126"},
		{"all empty", []stockDayRecord{{Date: ""}, {Date: ""}}, ""},
		{"no records", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstDatedRecord(tt.records); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyFeedValues_NormalizesNumerics(t *testing.T) {
	rec := stockDayRecord{
		Name:         "元大台灣50",
		TradeVolume:  "75,793,554",
		TradeValue:   "4,646,516,112",
		OpeningPrice: "61.10",
		HighestPrice: "61.45",
		LowestPrice:  "60.95",
		ClosingPrice: "61.35",
		Change:       "--",
		Transaction:  "49,069",
	}

	var row models.ExchangeReportStockDay
	applyFeedValues(&row, rec)

	if row.TradeVolume != 75793554 {
		t.Fatalf("volume: got %d", row.TradeVolume)
	}
	if row.TradeValue != 4646516112 {
		t.Fatalf("value: got %d", row.TradeValue)
	}
	if row.ClosingPrice.String() != "61.35" {
		t.Fatalf("closing: got %s", row.ClosingPrice)
	}
	if !row.Change.IsZero() {
		t.Fatalf("unparseable change must fall back to zero, got %s", row.Change)
	}
	if row.TransactionCount != 49069 {
		t.Fatalf("transactions: got %d", row.TransactionCount)
	}
}
