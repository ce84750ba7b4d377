package model

import "time"

const (
	// TimestampLayout is the ISO-8601 local timestamp written into every store
	TimestampLayout = "2006-01-02T15:04:05.000000"
	// DateLayout is the calendar date used in CSV rows and reports
	DateLayout = "2006-01-02"
	// FileDateLayout is the compact date embedded in generated file names
	FileDateLayout = "20060102"
)

// Timestamp formats t with TimestampLayout
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
