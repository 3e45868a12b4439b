package identifier

import (
	"sort"
	"strings"
)

// Type is a German National Library identifier scheme
type Type string

const (
	PPN Type = "PPN"
	IDN Type = "IDN"
	PND Type = "PND"
	ZDB Type = "ZDB"
	SWD Type = "SWD"
	GKD Type = "GKD"
)

// AllTypes lists every supported identifier type
var AllTypes = []Type{PPN, IDN, PND, ZDB, SWD, GKD}

// ParseType converts a type name to a Type, ignoring case and surrounding whitespace
func ParseType(name string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(name)))
	for _, known := range AllTypes {
		if t == known {
			return t, nil
		}
	}
	return "", ErrUnknownType
}

// ValidTypesText returns a human-readable list of the supported types
func ValidTypesText() string {
	names := make([]string, 0, len(AllTypes))
	for _, t := range AllTypes {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return "Valid types: " + strings.Join(names, ", ")
}
