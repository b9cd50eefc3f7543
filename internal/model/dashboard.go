package model

import "github.com/shopspring/decimal"

type Identity struct {
	ID    string
	Name  string
	Email string
}

// HourlyBucket is one "HH:00" slot of the hourly activity chart.
type HourlyBucket struct {
	Label            string
	TransactionCount int
	Volume           decimal.Decimal
}

type KPISnapshot struct {
	TotalVolume    decimal.Decimal
	TotalCount     int
	AvgTransaction decimal.Decimal
	RecentCount    int
}

// CacheEntry is the serialized form kept in local storage.
type CacheEntry struct {
	Transactions []Transaction `json:"transactions"`
	CachedAt     int64         `json:"cachedAt"`
}
