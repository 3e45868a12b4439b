package model

import "strings"

// RecordFilter contains criteria for filtering check records.
// All criteria are optional. Within each field, values are combined with OR
// logic; between fields, criteria are combined with AND logic.
type RecordFilter struct {
	// Kinds filters by record kind (case-insensitive)
	Kinds []string

	// Inputs filters by checked input (case-insensitive)
	Inputs []string

	// Valid, when set, keeps only records with this outcome
	Valid *bool
}

// IsEmpty reports whether the filter matches every record
func (f RecordFilter) IsEmpty() bool {
	return len(f.Kinds) == 0 && len(f.Inputs) == 0 && f.Valid == nil
}

// FilterRecords returns a new slice containing only records that match the filter
func FilterRecords(records []*CheckRecord, filter RecordFilter) []*CheckRecord {
	if filter.IsEmpty() {
		return records
	}

	kindMap := make(map[string]bool)
	for _, kind := range filter.Kinds {
		kindMap[strings.ToUpper(kind)] = true
	}

	inputMap := make(map[string]bool)
	for _, input := range filter.Inputs {
		inputMap[strings.ToLower(input)] = true
	}

	var filtered []*CheckRecord
	for _, record := range records {
		if len(filter.Kinds) > 0 && !kindMap[strings.ToUpper(record.Kind)] {
			continue
		}
		if len(filter.Inputs) > 0 && !inputMap[strings.ToLower(record.Input)] {
			continue
		}
		if filter.Valid != nil && record.Valid != *filter.Valid {
			continue
		}
		filtered = append(filtered, record)
	}

	return filtered
}
