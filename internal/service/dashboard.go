package service

import (
	"time"

	"github.com/hance08/findash/internal/logic/metrics"
)

// Dashboard derives the KPI panel, hourly chart and recent list from the
// loaded transactions, evaluated at now in the configured timezone.
func (ts *TransactionService) Dashboard(now time.Time) DashboardView {
	snap := ts.Snapshot()
	ref := now.In(ts.config.Dashboard.Location())

	return DashboardView{
		Identity:  snap.Identity,
		KPIs:      metrics.ComputeKPIs(snap.Transactions, ref),
		Buckets:   metrics.AggregateHourly(snap.Transactions, ref, ts.config.Dashboard.ChartHours),
		Recent:    metrics.Recent(snap.Transactions, ts.config.Dashboard.RecentLimit),
		FromCache: snap.FromCache,
		CachedAt:  snap.CachedAt,
	}
}

// List returns one page of the loaded transactions, newest first.
func (ts *TransactionService) List(page, size int) ListView {
	if size == 0 {
		size = ts.config.Dashboard.PageSize
	}

	snap := ts.Snapshot()
	return ListView{
		Identity: snap.Identity,
		Page:     metrics.Paginate(snap.Transactions, page, size, ts.config.Dashboard.MaxPageSize),
	}
}

// Now is the service clock.
func (ts *TransactionService) Now() time.Time {
	return ts.nowFn()
}
