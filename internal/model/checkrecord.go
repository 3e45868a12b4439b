package model

import (
	"time"
)

// KindURN marks records produced by URN check digit computation or verification
const KindURN = "URN"

// CheckRecord is the stored outcome of a single identifier or URN check
type CheckRecord struct {
	ID        string
	Kind      string // identifier type (PPN, ZDB, ...) or URN
	Input     string
	Output    string // computed URN, empty for plain validations
	Valid     bool
	Reason    string
	CheckTime time.Time
	Rev       int64
}

// GroupByKind groups records by their Kind
func GroupByKind(records []*CheckRecord) map[string][]*CheckRecord {
	grouped := make(map[string][]*CheckRecord)
	for _, record := range records {
		grouped[record.Kind] = append(grouped[record.Kind], record)
	}
	return grouped
}
