package utils

import "time"

// NowRFC3339 returns the current UTC time in RFC3339 format, the sortable
// textual format used for createdAt and updatedAt.
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// DateKey formats a time as the YYYY-MM-DD key used to address import objects.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
