package model

import "sort"

// SortBy specifies the field for sorting check records
type SortBy string

const (
	SortByKind      SortBy = "kind"
	SortByInput     SortBy = "input"
	SortByCheckTime SortBy = "check-time"
	SortByDefault   SortBy = "" // check time (newest first), then ID
)

// SortRecords sorts records in place. Unrecognized values of sortBy fall
// back to the default order.
func SortRecords(records []*CheckRecord, sortBy string) {
	switch SortBy(sortBy) {
	case SortByKind:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Kind < records[j].Kind
		})
	case SortByInput:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Input < records[j].Input
		})
	case SortByCheckTime:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CheckTime.Before(records[j].CheckTime)
		})
	default:
		sort.Slice(records, func(i, j int) bool {
			if !records[i].CheckTime.Equal(records[j].CheckTime) {
				return records[i].CheckTime.After(records[j].CheckTime)
			}
			return records[i].ID < records[j].ID
		})
	}
}
