// Package urn computes and verifies the check digit of persistent
// identifier URNs (urn:nbn scheme of the German National Library).
package urn

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kitodo/dlfcheck/internal/textutil"
)

var (
	ErrInvalidChars = errors.New("urn contains characters outside [a-z0-9:-]")
	ErrArithmetic   = errors.New("urn check digit divisor is zero")
	ErrTooShort     = errors.New("urn is too short to carry a check digit")
)

var invalidChars = regexp.MustCompile(`[^a-z0-9:-]`)

// concordance maps each permitted character to its numeral string
var concordance = map[rune]string{
	'0': "1", '1': "2", '2': "3", '3': "4", '4': "5",
	'5': "6", '6': "7", '7': "8", '8': "9", '9': "41",
	'a': "18", 'b': "14", 'c': "19", 'd': "15", 'e': "16",
	'f': "21", 'g': "22", 'h': "23", 'i': "24", 'j': "25",
	'k': "42", 'l': "26", 'm': "27", 'n': "13", 'o': "28",
	'p': "29", 'q': "31", 'r': "12", 's': "32", 't': "33",
	'u': "11", 'v': "34", 'w': "35", 'x': "36", 'y': "37",
	'z': "38", '-': "39", ':': "17",
}

// numerals lowercases s and maps it through the concordance table
func numerals(s string) (string, error) {
	lower := textutil.LowerASCII(s)
	if invalidChars.MatchString(lower) {
		return "", ErrInvalidChars
	}
	var b strings.Builder
	for _, r := range lower {
		b.WriteString(concordance[r])
	}
	return b.String(), nil
}

// checkDigitOf derives the check digit from a numeral string: the sum of
// digit times 1-based position, divided by the last digit, keeping the
// last digit of the quotient.
func checkDigitOf(digits string) (string, error) {
	if digits == "" {
		return "", ErrArithmetic
	}
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += (i + 1) * int(digits[i]-'0')
	}
	divisor := int(digits[len(digits)-1] - '0')
	if divisor == 0 {
		return "", ErrArithmetic
	}
	quotient := strconv.Itoa(sum / divisor)
	return quotient[len(quotient)-1:], nil
}

// CheckDigit returns the check digit for the URN formed by base and id
func CheckDigit(base, id string) (string, error) {
	digits, err := numerals(base + id)
	if err != nil {
		return "", fmt.Errorf("%q: %w", base+id, err)
	}
	digit, err := checkDigitOf(digits)
	if err != nil {
		return "", fmt.Errorf("%q: %w", base+id, err)
	}
	return digit, nil
}

// Build returns base and id joined with their check digit appended
func Build(base, id string) (string, error) {
	digit, err := CheckDigit(base, id)
	if err != nil {
		return "", err
	}
	return base + id + digit, nil
}

// Checksum returns base+id with the check digit appended, or an empty
// string if no check digit can be computed
func Checksum(base, id string) string {
	full, err := Build(base, id)
	if err != nil {
		return ""
	}
	return full
}

// Verify reports whether the last character of a complete URN is its
// correct check digit
func Verify(urn string) bool {
	return VerifyErr(urn) == nil
}

// VerifyErr is like Verify but reports why a URN was rejected
func VerifyErr(urn string) error {
	if len(urn) < 2 {
		return ErrTooShort
	}
	body, got := urn[:len(urn)-1], urn[len(urn)-1:]
	want, err := CheckDigit(body, "")
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%q: expected check digit %s, got %s", urn, want, got)
	}
	return nil
}
