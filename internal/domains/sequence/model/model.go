package model

const (
	TableName  = "monthly_sequences"
	EntityName = "sequence"

	FieldScope     = "scope"
	FieldYearMonth = "year_month"
	FieldValue     = "value"
)

// MonthlySequence is one counter row per (scope, calendar month) pair.
type MonthlySequence struct {
	Scope     string `db:"scope"`
	YearMonth string `db:"year_month"`
	Value     int    `db:"value"`
}
