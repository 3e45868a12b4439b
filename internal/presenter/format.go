package presenter

import (
	"fmt"
	"time"

	"github.com/kitodo/dlfcheck/internal/model"
)

// FormatAge formats the time since t as "5 minutes ago", "2.5 hours ago" or "3 days ago"
func FormatAge(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%.0f minutes ago", d.Minutes())
	case d < 24*time.Hour:
		return fmt.Sprintf("%.1f hours ago", d.Hours())
	default:
		return fmt.Sprintf("%.0f days ago", d.Hours()/24)
	}
}

// FormatAgeCompact is FormatAge for table columns: "5m ago", "2.5h ago", "3d ago"
func FormatAgeCompact(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%.0fm ago", d.Minutes())
	case d < 24*time.Hour:
		return fmt.Sprintf("%.1fh ago", d.Hours())
	default:
		return fmt.Sprintf("%.0fd ago", d.Hours()/24)
	}
}

// Verdict renders a one-line outcome for a check record
func Verdict(record *model.CheckRecord) string {
	subject := record.Input
	if record.Output != "" {
		subject = record.Output
	}
	if record.Valid {
		return fmt.Sprintf("%s %s: valid", record.Kind, subject)
	}
	return fmt.Sprintf("%s %s: invalid (%s)", record.Kind, subject, record.Reason)
}

// Truncate shortens s to maxLen characters, ending in "..." when cut
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
