// Package checker runs identifier and URN checks and keeps an audit trail
// of their outcomes.
package checker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/kitodo/dlfcheck/internal/identifier"
	"github.com/kitodo/dlfcheck/internal/metrics"
	"github.com/kitodo/dlfcheck/internal/model"
	"github.com/kitodo/dlfcheck/internal/urn"
)

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	// CacheTTL is how long a repeated check reuses the previous record instead of storing a new one
	CacheTTL time.Duration
	// CacheCleanup is the interval for purging expired cache entries
	CacheCleanup time.Duration
	// Namespace is prepended when a URN is requested with an empty base
	Namespace string
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// Service implements the identifier and URN checks
type Service struct {
	repo      model.RecordRepository
	cache     *gocache.Cache
	namespace string
	metrics   *metrics.Metrics
	log       *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewService creates a checker that stores records in repo
func NewService(repo model.RecordRepository, opts Options) *Service {
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.CacheCleanup == 0 {
		opts.CacheCleanup = 10 * time.Minute
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		cache:     gocache.New(opts.CacheTTL, opts.CacheCleanup),
		namespace: opts.Namespace,
		metrics:   opts.Metrics,
		log:       opts.Logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// CheckIdentifier validates id as an identifier of the named type. The
// only error is identifier.ErrUnknownType (or a cancelled context); an
// invalid identifier yields a record with Valid false and a Reason.
func (s *Service) CheckIdentifier(ctx context.Context, id, typeName string) (*model.CheckRecord, error) {
	idType, err := identifier.ParseType(typeName)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, string(idType), id, string(idType)+"|"+id, func() (string, error) {
		return "", identifier.Validate(id, idType)
	})
}

// URN computes the check digit for base+id. An empty base uses the configured namespace.
func (s *Service) URN(ctx context.Context, base, id string) (*model.CheckRecord, error) {
	if base == "" {
		base = s.namespace
	}
	return s.run(ctx, model.KindURN, base+id, "build|"+base+"|"+id, func() (string, error) {
		return urn.Build(base, id)
	})
}

// VerifyURN checks the trailing check digit of a complete URN
func (s *Service) VerifyURN(ctx context.Context, full string) (*model.CheckRecord, error) {
	return s.run(ctx, model.KindURN, full, "verify|"+full, func() (string, error) {
		return "", urn.VerifyErr(full)
	})
}

// Records lists stored records matching filter, sorted by sortBy
func (s *Service) Records(ctx context.Context, filter model.RecordFilter, sortBy string) ([]*model.CheckRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	records = model.FilterRecords(records, filter)
	model.SortRecords(records, sortBy)
	return records, nil
}

// run executes check and stores the outcome. A check repeated within the
// cache TTL returns the earlier stored record without storing a new one.
func (s *Service) run(ctx context.Context, kind, input, cacheKey string, check func() (string, error)) (*model.CheckRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cached, found := s.cache.Get(cacheKey); found {
		s.metrics.CacheHits.Inc()
		record := *cached.(*model.CheckRecord)
		return &record, nil
	}

	output, err := check()
	record := &model.CheckRecord{
		ID:        s.newID(),
		Kind:      kind,
		Input:     input,
		Output:    output,
		Valid:     err == nil,
		CheckTime: s.now().UTC(),
	}
	if err != nil {
		record.Reason = err.Error()
	}

	s.metrics.ObserveCheck(kind, record.Valid)
	s.log.Debug("Check completed",
		slog.String("kind", kind),
		slog.String("input", input),
		slog.Bool("valid", record.Valid))

	if s.repo != nil {
		if err := s.repo.Store(ctx, record); err != nil {
			// The check result stands even when the audit trail is unavailable,
			// but only stored records are cached so cached IDs always resolve
			s.metrics.StoreErrors.Inc()
			s.log.Warn("Failed to store check record",
				slog.String("id", record.ID),
				slog.String("error", err.Error()))
			return record, nil
		}
	}

	cached := *record
	s.cache.SetDefault(cacheKey, &cached)
	return record, nil
}
