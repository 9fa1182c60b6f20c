package twsesync

// stockDayRecord mirrors one element of the exchangeReport/STOCK_DAY_ALL
// response. Every field arrives as a string, numerics may carry thousands
// separators, and Date is a ROC calendar day (yyyMMdd, e.g. 1141126).
type stockDayRecord struct {
	Date         string `json:"Date"`
	Code         string `json:"Code"`
	Name         string `json:"Name"`
	TradeVolume  string `json:"TradeVolume"`
	TradeValue   string `json:"TradeValue"`
	OpeningPrice string `json:"OpeningPrice"`
	HighestPrice string `json:"HighestPrice"`
	LowestPrice  string `json:"LowestPrice"`
	ClosingPrice string `json:"ClosingPrice"`
	Change       string `json:"Change"`
	Transaction  string `json:"Transaction"`
}

// RunResult summarizes one completed sync run.
type RunResult struct {
	PartitionDate string `json:"partitionDate"`
	Fetched       int    `json:"fetched"`
	Inserted      int    `json:"inserted"`
	Updated       int    `json:"updated"`
	DurationMs    int64  `json:"durationMs"`
	FinishedAt    string `json:"finishedAt"`
}
