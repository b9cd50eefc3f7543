package constants

import "time"

const (
	// Transaction Types
	TypeCredit = "credit"
	TypeDebit  = "debit"

	// Status
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"

	// Date Layouts
	DateTimeFormat  = "02/01/2006 15:04:05"
	HourLabelFormat = "%02d:00"
	HoursPerDay     = 24

	NoDateLabel              = "No date available"
	DefaultDescriptionPrefix = "Transferencia a "

	// RecentWindow is the look-back used by the recent activity KPI.
	RecentWindow = 24 * time.Hour
)

const (
	EndpointTransactions       = "/transactions"
	EndpointGlobalTransactions = "/GetGlobalTransactions"
)
