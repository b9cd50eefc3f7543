// Package metrics derives chart series and KPIs from a transaction list.
// Every function here is pure: no I/O and no clock reads.
package metrics

import (
	"time"

	"github.com/hance08/findash/internal/constants"
	"github.com/hance08/findash/internal/model"
	"github.com/hance08/findash/internal/utils"
	"github.com/shopspring/decimal"
)

// AggregateHourly buckets transactions by hour of day over the hourSpan hours
// ending at ref, oldest first. Buckets are keyed by "HH:00" only, so records
// 24h apart land in the same bucket. Records outside the window's labels are dropped.
func AggregateHourly(txs []model.Transaction, ref time.Time, hourSpan int) []model.HourlyBucket {
	if hourSpan < 1 {
		return []model.HourlyBucket{}
	}
	if hourSpan > constants.HoursPerDay {
		hourSpan = constants.HoursPerDay
	}

	buckets := make([]model.HourlyBucket, hourSpan)
	index := make(map[int]int, hourSpan)

	start := ref.Hour() - (hourSpan - 1)
	for i := range buckets {
		hour := mod24(start + i)
		buckets[i] = model.HourlyBucket{
			Label:  utils.FormatHourLabel(hour),
			Volume: decimal.Zero,
		}
		index[hour] = i
	}

	loc := ref.Location()
	for _, tx := range txs {
		ts, ok := tx.Time()
		if !ok {
			continue
		}
		i, ok := index[ts.In(loc).Hour()]
		if !ok {
			continue
		}
		buckets[i].TransactionCount++
		buckets[i].Volume = buckets[i].Volume.Add(tx.Amount.Abs())
	}

	return buckets
}

// ComputeKPIs summarizes the full list. Records without a timestamp still
// count toward totals but never toward RecentCount.
func ComputeKPIs(txs []model.Transaction, now time.Time) model.KPISnapshot {
	snap := model.KPISnapshot{
		TotalVolume:    decimal.Zero,
		AvgTransaction: decimal.Zero,
	}

	since := now.Add(-constants.RecentWindow)
	for _, tx := range txs {
		snap.TotalCount++
		snap.TotalVolume = snap.TotalVolume.Add(tx.Amount.Abs())

		if ts, ok := tx.Time(); ok && ts.After(since) && !ts.After(now) {
			snap.RecentCount++
		}
	}

	if snap.TotalCount > 0 {
		snap.AvgTransaction = snap.TotalVolume.Div(decimal.NewFromInt(int64(snap.TotalCount)))
	}
	return snap
}

// Total sums the magnitudes of every bucket.
func Total(buckets []model.HourlyBucket) (int, decimal.Decimal) {
	count := 0
	volume := decimal.Zero
	for _, b := range buckets {
		count += b.TransactionCount
		volume = volume.Add(b.Volume)
	}
	return count, volume
}

func mod24(h int) int {
	h %= constants.HoursPerDay
	if h < 0 {
		h += constants.HoursPerDay
	}
	return h
}
