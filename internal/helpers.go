package internal

import "time"

const (
	formatDDMMYYYY     = "02.01.2006"
	formatDDMMYYYYHHMM = "02.01.2006 15:04"
)

func Format(date time.Time) string {
	return date.Format(formatDDMMYYYY)
}

func FormatDateTime(moment time.Time) string {
	return moment.Format(formatDDMMYYYYHHMM)
}

// FormatOptional renders a nullable date, "-" when unset.
func FormatOptional(date *time.Time) string {
	if date == nil {
		return "-"
	}
	return Format(*date)
}
