package models

// Requests for alert HTTP endpoints. Defined in domain for consistency and reuse.

type SignalRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
}

type HistoryRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Days   int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=365"`
}

type RunRequest struct {
	// DryRun computes the report without writing the trigger log, storing
	// history, or sending email.
	DryRun bool `query:"dry_run" json:"dry_run"`
}

type RepeatRequest struct {
	DaysBack int `query:"days_back" json:"days_back" default:"7" validate:"gte=1,lte=60"`
	Min      int `query:"min" json:"min" default:"2" validate:"gte=1,lte=30"`
}
