package model

import (
	"testing"
	"time"
)

func TestSortRecords_ByKind(t *testing.T) {
	records := []*CheckRecord{
		{ID: "1", Kind: "ZDB"},
		{ID: "2", Kind: "GKD"},
		{ID: "3", Kind: "PPN"},
	}

	SortRecords(records, "kind")

	expected := []string{"GKD", "PPN", "ZDB"}
	for i, kind := range expected {
		if records[i].Kind != kind {
			t.Errorf("Expected %s at position %d, got %s", kind, i, records[i].Kind)
		}
	}
}

func TestSortRecords_ByInput(t *testing.T) {
	records := []*CheckRecord{
		{ID: "1", Input: "3"},
		{ID: "2", Input: "1"},
		{ID: "3", Input: "2"},
	}

	SortRecords(records, "input")

	if records[0].Input != "1" || records[1].Input != "2" || records[2].Input != "3" {
		t.Errorf("Expected inputs in ascending order, got %s %s %s", records[0].Input, records[1].Input, records[2].Input)
	}
}

func TestSortRecords_ByCheckTime(t *testing.T) {
	now := time.Now()
	records := []*CheckRecord{
		{ID: "new", CheckTime: now},
		{ID: "old", CheckTime: now.Add(-2 * time.Hour)},
		{ID: "mid", CheckTime: now.Add(-1 * time.Hour)},
	}

	SortRecords(records, "check-time")

	if records[0].ID != "old" || records[1].ID != "mid" || records[2].ID != "new" {
		t.Errorf("Expected oldest first, got %s %s %s", records[0].ID, records[1].ID, records[2].ID)
	}
}

func TestSortRecords_Default(t *testing.T) {
	now := time.Now()
	records := []*CheckRecord{
		{ID: "b", CheckTime: now},
		{ID: "old", CheckTime: now.Add(-time.Hour)},
		{ID: "a", CheckTime: now},
	}

	SortRecords(records, "")

	if records[0].ID != "a" || records[1].ID != "b" || records[2].ID != "old" {
		t.Errorf("Expected newest first with ID tiebreak, got %s %s %s", records[0].ID, records[1].ID, records[2].ID)
	}
}

func TestSortRecords_UnknownFallsBackToDefault(t *testing.T) {
	now := time.Now()
	records := []*CheckRecord{
		{ID: "old", CheckTime: now.Add(-time.Hour)},
		{ID: "new", CheckTime: now},
	}

	SortRecords(records, "nonsense")

	if records[0].ID != "new" {
		t.Errorf("Expected newest first, got %s", records[0].ID)
	}
}
