// Package identifier validates identifiers of the German National Library
// (PPN, IDN, PND, ZDB, SWD, GKD) by their modulo-11 check character.
package identifier

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrUnknownType      = errors.New("unknown identifier type")
	ErrInvalidFormat    = errors.New("identifier does not match the expected format")
	ErrChecksumMismatch = errors.New("identifier check character does not match")
	ErrArithmetic       = errors.New("identifier checksum cannot be resolved")
)

var (
	plainPattern  = regexp.MustCompile(`(?i)^[0-9]{8}[0-9X]$`)
	dashedPattern = regexp.MustCompile(`(?i)^[0-9]{8}-[0-9X]$`)
	swdPattern    = regexp.MustCompile(`^[0-9]{8}-[0-9]$`)
)

// maxSWDIncrements bounds the SWD fallback. An increment never shifts the
// weighted sum by a multiple of 11, so a well-formed block resolves after
// one step.
const maxSWDIncrements = 11

// weightedRemainder computes (11 - sum mod 11) mod 11 over the first eight
// digits of id, weighting them 9 down to 2.
func weightedRemainder(id string) int {
	digits := id
	if len(digits) > 8 {
		digits = digits[:8]
	}
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += (9 - i) * int(digits[i]-'0')
	}
	return (11 - sum%11) % 11
}

// checkChar renders a check value, mapping 10 to X
func checkChar(value int) string {
	if value == 10 {
		return "X"
	}
	return strconv.Itoa(value)
}

// lastChar returns the final character of id, upper-cased
func lastChar(id string) string {
	return strings.ToUpper(id[len(id)-1:])
}

// Validate checks id against the rules of the given type. It returns nil
// for a valid identifier, or an error wrapping ErrInvalidFormat,
// ErrChecksumMismatch, ErrArithmetic or ErrUnknownType.
func Validate(id string, t Type) error {
	switch t {
	case PPN, IDN, PND:
		return validateSimple(id, t, plainPattern)
	case ZDB:
		return validateSimple(id, t, dashedPattern)
	case GKD:
		if !dashedPattern.MatchString(id) {
			return fmt.Errorf("%s %q: %w", t, id, ErrInvalidFormat)
		}
		want := checkChar(11 - weightedRemainder(id))
		if lastChar(id) != want {
			return fmt.Errorf("%s %q: expected %s: %w", t, id, want, ErrChecksumMismatch)
		}
		return nil
	case SWD:
		return validateSWD(id)
	default:
		return fmt.Errorf("%q: %w", t, ErrUnknownType)
	}
}

func validateSimple(id string, t Type, pattern *regexp.Regexp) error {
	if !pattern.MatchString(id) {
		return fmt.Errorf("%s %q: %w", t, id, ErrInvalidFormat)
	}
	want := checkChar(weightedRemainder(id))
	if lastChar(id) != want {
		return fmt.Errorf("%s %q: expected %s: %w", t, id, want, ErrChecksumMismatch)
	}
	return nil
}

// validateSWD handles the SWD rule, where a check value of 10 means the
// number was assigned from the next digit block
func validateSWD(id string) error {
	if !swdPattern.MatchString(id) {
		return fmt.Errorf("%s %q: %w", SWD, id, ErrInvalidFormat)
	}
	block, err := strconv.Atoi(id[:8])
	if err != nil {
		return fmt.Errorf("%s %q: %w", SWD, id, ErrInvalidFormat)
	}
	suffix := id[8:]

	candidate := id
	for attempt := 0; attempt <= maxSWDIncrements; attempt++ {
		want := 11 - weightedRemainder(candidate)
		if want != 10 {
			if suffix[1:] != strconv.Itoa(want) {
				return fmt.Errorf("%s %q: expected %d: %w", SWD, id, want, ErrChecksumMismatch)
			}
			return nil
		}
		block++
		if block > 99999999 {
			break
		}
		candidate = fmt.Sprintf("%08d%s", block, suffix)
	}
	return fmt.Errorf("%s %q: %w", SWD, id, ErrArithmetic)
}

// Check reports whether id is a valid identifier of the given type
func Check(id string, t Type) bool {
	return Validate(id, t) == nil
}

// IsPPN reports whether id is a valid Pica Production Number
func IsPPN(id string) bool {
	return Check(id, PPN)
}
