package urn

import (
	"errors"
	"fmt"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		id       string
		expected string
	}{
		{"published urn", "urn:nbn:de:gbv:089-332175294", "", "urn:nbn:de:gbv:089-3321752945"},
		{"base and id", "urn:nbn:de:bsz:14-qucosa-", "12345", "urn:nbn:de:bsz:14-qucosa-123454"},
		{"short namespace", "urn:nbn:de:", "test", "urn:nbn:de:test9"},
		{"mixed case keeps input case", "URN:NBN:DE:bsz:14-db-", "id1234", "URN:NBN:DE:bsz:14-db-id12343"},
		{"lowercase equivalent", "urn:nbn:de:bsz:14-db-", "id1234", "urn:nbn:de:bsz:14-db-id12343"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.base, tt.id)
			if err != nil {
				t.Fatalf("Build(%q, %q) unexpected error: %v", tt.base, tt.id, err)
			}
			if got != tt.expected {
				t.Errorf("Build(%q, %q) = %q, expected %q", tt.base, tt.id, got, tt.expected)
			}
		})
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	first := Checksum("urn:nbn:de:bsz:14-qucosa-", "12345")
	for i := 0; i < 5; i++ {
		if got := Checksum("urn:nbn:de:bsz:14-qucosa-", "12345"); got != first {
			t.Fatalf("Checksum returned %q, then %q", first, got)
		}
	}
}

func TestChecksum_InvalidChars(t *testing.T) {
	tests := []struct {
		name string
		base string
		id   string
	}{
		{"space", "urn:nbn:de:", "a b"},
		{"slash", "urn:nbn:de:", "a/b"},
		{"underscore", "urn:nbn:de:", "a_b"},
		{"dot", "urn:nbn:de:gbv.", "1"},
		{"umlaut", "urn:nbn:de:", "mü"},
		{"kelvin sign", "urn:nbn:de:", "\u212Aa1"},
		{"dotted capital I", "urn:nbn:de:", "\u0130"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.base, tt.id); got != "" {
				t.Errorf("Checksum(%q, %q) = %q, expected empty string", tt.base, tt.id, got)
			}
			if _, err := Build(tt.base, tt.id); !errors.Is(err, ErrInvalidChars) {
				t.Errorf("Build(%q, %q) error = %v, expected ErrInvalidChars", tt.base, tt.id, err)
			}
		})
	}
}

func TestCheckDigitOf_ZeroDivisor(t *testing.T) {
	tests := []struct {
		name   string
		digits string
	}{
		{"empty", ""},
		{"ends in zero", "1310"},
		{"only zero", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := checkDigitOf(tt.digits); !errors.Is(err, ErrArithmetic) {
				t.Errorf("checkDigitOf(%q) error = %v, expected ErrArithmetic", tt.digits, err)
			}
		})
	}
}

func TestChecksum_EmptyInput(t *testing.T) {
	if got := Checksum("", ""); got != "" {
		t.Errorf("Checksum of empty input = %q, expected empty string", got)
	}
	if _, err := Build("", ""); !errors.Is(err, ErrArithmetic) {
		t.Errorf("Build of empty input error = %v, expected ErrArithmetic", err)
	}
}

func TestCheckDigitOf(t *testing.T) {
	// 1*1 + 2*2 + 3*3 = 14, 14 / 3 = 4
	got, err := checkDigitOf("123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "4" {
		t.Errorf("checkDigitOf(\"123\") = %q, expected \"4\"", got)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		urn      string
		expected bool
	}{
		{"urn:nbn:de:gbv:089-3321752945", true},
		{"urn:nbn:de:gbv:089-3321752946", false},
		{"urn:nbn:de:test9", true},
		{"URN:NBN:DE:bsz:14-db-id12343", true},
		{"urn:nbn:de:test/9", false},
		{"urn:nbn:de:\u212Aa14", false},
		{"9", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.urn, func(t *testing.T) {
			if got := Verify(tt.urn); got != tt.expected {
				t.Errorf("Verify(%q) = %v, expected %v", tt.urn, got, tt.expected)
			}
		})
	}
}

func ExampleChecksum() {
	fmt.Println(Checksum("urn:nbn:de:gbv:089-", "332175294"))
	fmt.Println(Checksum("urn:nbn:de:", "not valid") == "")
	// Output:
	// urn:nbn:de:gbv:089-3321752945
	// true
}
