package checker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kitodo/dlfcheck/internal/identifier"
	"github.com/kitodo/dlfcheck/internal/metrics"
	"github.com/kitodo/dlfcheck/internal/model"
	"github.com/kitodo/dlfcheck/internal/repository/memrepo"
)

// failingRepository refuses every write
type failingRepository struct {
	*memrepo.MemoryRepository
}

func (failingRepository) Store(ctx context.Context, record *model.CheckRecord) error {
	return errors.New("table unavailable")
}

func newTestService(t *testing.T, repo model.RecordRepository) (*Service, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	svc := NewService(repo, Options{Metrics: m, Namespace: "urn:nbn:de:gbv:089-"})
	counter := 0
	svc.newID = func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}
	svc.now = func() time.Time {
		return time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC)
	}
	return svc, m
}

func TestCheckIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		typeName   string
		wantValid  bool
		wantReason string
	}{
		{"valid ppn", "048772607", "ppn", true, ""},
		{"invalid ppn", "048772608", "PPN", false, "does not match"},
		{"zdb without dash", "048772607", "zdb", false, "expected format"},
		{"swd fallback", "10000006-1", "SWD", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, memrepo.NewMemoryRepository())

			record, err := svc.CheckIdentifier(context.Background(), tt.id, tt.typeName)
			if err != nil {
				t.Fatalf("CheckIdentifier returned error: %v", err)
			}
			if record.Valid != tt.wantValid {
				t.Errorf("Valid = %v, expected %v (reason %q)", record.Valid, tt.wantValid, record.Reason)
			}
			if !strings.Contains(record.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, expected it to contain %q", record.Reason, tt.wantReason)
			}
			if record.Kind != strings.ToUpper(tt.typeName) {
				t.Errorf("Kind = %q, expected %q", record.Kind, strings.ToUpper(tt.typeName))
			}
		})
	}
}

func TestCheckIdentifier_UnknownType(t *testing.T) {
	svc, _ := newTestService(t, memrepo.NewMemoryRepository())

	_, err := svc.CheckIdentifier(context.Background(), "048772607", "isbn")
	if !errors.Is(err, identifier.ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType, got %v", err)
	}
}

func TestCheckIdentifier_StoresRecord(t *testing.T) {
	ctx := context.Background()
	repo := memrepo.NewMemoryRepository()
	svc, m := newTestService(t, repo)

	record, err := svc.CheckIdentifier(ctx, "048772607", "PPN")
	if err != nil {
		t.Fatalf("CheckIdentifier returned error: %v", err)
	}

	stored, err := repo.Get(ctx, record.ID)
	if err != nil {
		t.Fatalf("Expected record to be stored: %v", err)
	}
	if stored.Input != "048772607" || !stored.Valid || stored.Rev != 1 {
		t.Errorf("Unexpected stored record: %+v", stored)
	}
	if got := testutil.ToFloat64(m.Checks.WithLabelValues("PPN", "true")); got != 1 {
		t.Errorf("Expected one counted check, got %v", got)
	}
}

func TestCheckIdentifier_CachedRepeat(t *testing.T) {
	ctx := context.Background()
	repo := memrepo.NewMemoryRepository()
	svc, m := newTestService(t, repo)

	first, _ := svc.CheckIdentifier(ctx, "048772607", "PPN")
	second, _ := svc.CheckIdentifier(ctx, "048772607", "ppn")

	if first.ID != second.ID {
		t.Errorf("Expected repeated check to reuse record %s, got %s", first.ID, second.ID)
	}
	records, _ := repo.List(ctx)
	if len(records) != 1 {
		t.Errorf("Expected a single stored record, got %d", len(records))
	}
	if got := testutil.ToFloat64(m.CacheHits); got != 1 {
		t.Errorf("Expected one cache hit, got %v", got)
	}

	// Changing the returned record must not alter the cache
	second.Valid = false
	third, _ := svc.CheckIdentifier(ctx, "048772607", "PPN")
	if !third.Valid {
		t.Errorf("Cached record was modified through a returned copy")
	}
}

func TestCheckIdentifier_StoreFailureIsNotFatal(t *testing.T) {
	svc, m := newTestService(t, failingRepository{memrepo.NewMemoryRepository()})

	record, err := svc.CheckIdentifier(context.Background(), "048772607", "PPN")
	if err != nil {
		t.Fatalf("Expected store failure to be swallowed, got %v", err)
	}
	if !record.Valid {
		t.Errorf("Expected valid record despite store failure")
	}
	if got := testutil.ToFloat64(m.StoreErrors); got != 1 {
		t.Errorf("Expected one store error, got %v", got)
	}

	// An unstored record is not cached, so the repeat gets a fresh ID
	again, err := svc.CheckIdentifier(context.Background(), "048772607", "PPN")
	if err != nil {
		t.Fatalf("Expected store failure to be swallowed, got %v", err)
	}
	if again.ID == record.ID {
		t.Errorf("Expected a new record ID after a failed store, got %s again", again.ID)
	}
	if got := testutil.ToFloat64(m.CacheHits); got != 0 {
		t.Errorf("Expected no cache hits, got %v", got)
	}
	if got := testutil.ToFloat64(m.StoreErrors); got != 2 {
		t.Errorf("Expected two store errors, got %v", got)
	}
}

func TestCheckIdentifier_CancelledContext(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.CheckIdentifier(ctx, "048772607", "PPN"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestURN(t *testing.T) {
	svc, _ := newTestService(t, memrepo.NewMemoryRepository())
	ctx := context.Background()

	record, err := svc.URN(ctx, "urn:nbn:de:gbv:089-", "332175294")
	if err != nil {
		t.Fatalf("URN returned error: %v", err)
	}
	if record.Output != "urn:nbn:de:gbv:089-3321752945" || !record.Valid || record.Kind != model.KindURN {
		t.Errorf("Unexpected record: %+v", record)
	}

	// Empty base falls back to the namespace
	record, _ = svc.URN(ctx, "", "332175294")
	if record.Output != "urn:nbn:de:gbv:089-3321752945" {
		t.Errorf("Expected namespace fallback, got %q", record.Output)
	}

	record, _ = svc.URN(ctx, "urn:nbn:de:", "a b")
	if record.Valid || record.Output != "" || record.Reason == "" {
		t.Errorf("Expected invalid record for bad characters, got %+v", record)
	}
}

func TestVerifyURN(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	valid, _ := svc.VerifyURN(ctx, "urn:nbn:de:gbv:089-3321752945")
	if !valid.Valid {
		t.Errorf("Expected valid URN, got reason %q", valid.Reason)
	}

	invalid, _ := svc.VerifyURN(ctx, "urn:nbn:de:gbv:089-3321752940")
	if invalid.Valid {
		t.Errorf("Expected invalid URN")
	}
}

func TestRecords(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, memrepo.NewMemoryRepository())

	svc.CheckIdentifier(ctx, "048772607", "PPN")
	svc.CheckIdentifier(ctx, "048772608", "PPN")
	svc.CheckIdentifier(ctx, "04877260-7", "ZDB")

	valid := true
	records, err := svc.Records(ctx, model.RecordFilter{Kinds: []string{"PPN"}, Valid: &valid}, "")
	if err != nil {
		t.Fatalf("Records returned error: %v", err)
	}
	if len(records) != 1 || records[0].Input != "048772607" {
		t.Errorf("Expected only the valid PPN record, got %v", records)
	}

	all, _ := svc.Records(ctx, model.RecordFilter{}, "input")
	if len(all) != 3 || all[0].Input != "04877260-7" {
		t.Errorf("Expected three records sorted by input, got %v", all)
	}
}

func TestRecords_NoRepository(t *testing.T) {
	svc, _ := newTestService(t, nil)
	records, err := svc.Records(context.Background(), model.RecordFilter{}, "")
	if err != nil || len(records) != 0 {
		t.Errorf("Expected no records and no error, got %v, %v", records, err)
	}
}
