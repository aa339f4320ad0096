package listings

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/logger"
	"github.com/Domenick1991/staybooking/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListingsRequest carries raw query parameters; empty strings mean "not supplied".
type ListingsRequest struct {
	Page      string
	PageSize  string
	Text      string
	MinRate   string
	MaxRate   string
	MinRating string
}

type ListingUseCase interface {
	List(ctx context.Context, req ListingsRequest) (*domain.ListingsPage, error)
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

type Catalog interface {
	Query(filter domain.ListingFilter, page, pageSize int) (domain.ListingsPage, error)
	Get(id int64) (domain.Listing, bool)
	Version() string
}

type ListingCache interface {
	GetListingsPage(ctx context.Context, version, query string) (*domain.ListingsPage, error)
	SetListingsPage(ctx context.Context, version, query string, page domain.ListingsPage) error
}

type ListingService struct {
	catalog Catalog
	cache   ListingCache
	log     *logger.Logger
	metrics *metrics.Metrics
}

type ListingServiceOption func(*ListingService)

func WithCache(cache ListingCache) ListingServiceOption {
	return func(s *ListingService) {
		s.cache = cache
	}
}

func WithLogger(log *logger.Logger) ListingServiceOption {
	return func(s *ListingService) {
		s.log = log
	}
}

func WithMetrics(m *metrics.Metrics) ListingServiceOption {
	return func(s *ListingService) {
		s.metrics = m
	}
}

func NewListingService(catalog Catalog, opts ...ListingServiceOption) *ListingService {
	s := &ListingService{catalog: catalog}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.metrics == nil {
		s.metrics = metrics.New(prometheus.NewRegistry())
	}
	return s
}

func (s *ListingService) List(ctx context.Context, req ListingsRequest) (*domain.ListingsPage, error) {
	q, err := ParseListingsRequest(req)
	if err != nil {
		return nil, err
	}

	key := q.cacheKey()
	if s.cache != nil {
		cached, err := s.cache.GetListingsPage(ctx, s.catalog.Version(), key)
		if err != nil {
			s.log.Warn("listing cache read failed", "error", err)
		} else if cached != nil {
			s.metrics.ListingQueries.WithLabelValues("hit").Inc()
			return cached, nil
		}
	}

	page, err := s.catalog.Query(q.Filter, q.Page, q.PageSize)
	if err != nil {
		return nil, err
	}
	s.metrics.ListingQueries.WithLabelValues("miss").Inc()

	if s.cache != nil {
		if err := s.cache.SetListingsPage(ctx, s.catalog.Version(), key, page); err != nil {
			s.log.Warn("listing cache write failed", "error", err)
		}
	}
	return &page, nil
}

func (s *ListingService) GetByID(_ context.Context, id int64) (*domain.Listing, error) {
	l, ok := s.catalog.Get(id)
	if !ok {
		return nil, apperrors.NotFound(fmt.Sprintf("listing %d not found", id))
	}
	return &l, nil
}

// ListingsQuery is a validated ListingsRequest.
type ListingsQuery struct {
	Page     int
	PageSize int
	Filter   domain.ListingFilter
}

// ParseListingsRequest applies defaults and rejects malformed numbers instead of
// coercing them. Fractional rate bounds are tightened to the integers they admit.
func ParseListingsRequest(req ListingsRequest) (ListingsQuery, error) {
	q := ListingsQuery{Page: DefaultPage, PageSize: DefaultPageSize}
	var err error

	if q.Page, err = parseInt("page", req.Page, DefaultPage); err != nil {
		return q, err
	}
	if q.Page < 1 {
		return q, apperrors.Validation("page must be at least 1")
	}
	if q.PageSize, err = parseInt("pageSize", req.PageSize, DefaultPageSize); err != nil {
		return q, err
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		return q, apperrors.Validation(fmt.Sprintf("pageSize must be between 1 and %d", MaxPageSize))
	}

	q.Filter.Text = strings.TrimSpace(req.Text)

	if v, ok, err := parseNumber("minRate", req.MinRate); err != nil {
		return q, err
	} else if ok {
		q.Filter.MinRate = intBound(math.Ceil(v))
	}
	if v, ok, err := parseNumber("maxRate", req.MaxRate); err != nil {
		return q, err
	} else if ok {
		q.Filter.MaxRate = intBound(math.Floor(v))
	}
	if v, ok, err := parseNumber("minRating", req.MinRating); err != nil {
		return q, err
	} else if ok {
		q.Filter.MinRating = &v
	}
	return q, nil
}

func (q ListingsQuery) cacheKey() string {
	var b strings.Builder
	fmt.Fprintf(&b, "page=%d&pageSize=%d&text=%s", q.Page, q.PageSize, strings.ToLower(q.Filter.Text))
	if q.Filter.MinRate != nil {
		fmt.Fprintf(&b, "&minRate=%d", *q.Filter.MinRate)
	}
	if q.Filter.MaxRate != nil {
		fmt.Fprintf(&b, "&maxRate=%d", *q.Filter.MaxRate)
	}
	if q.Filter.MinRating != nil {
		fmt.Fprintf(&b, "&minRating=%g", *q.Filter.MinRating)
	}
	return b.String()
}

func parseInt(name, raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Validation(fmt.Sprintf("%s must be an integer, got %q", name, raw)).
			WithDetails(map[string]any{name: raw})
	}
	return v, nil
}

func parseNumber(name, raw string) (float64, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, apperrors.Validation(fmt.Sprintf("%s must be a number, got %q", name, raw)).
			WithDetails(map[string]any{name: raw})
	}
	return v, true, nil
}

// intBound clamps to the int range so huge bounds keep their meaning.
func intBound(v float64) *int {
	var out int
	switch {
	case v >= math.MaxInt32:
		out = math.MaxInt32
	case v <= math.MinInt32:
		out = math.MinInt32
	default:
		out = int(v)
	}
	return &out
}

var _ ListingUseCase = (*ListingService)(nil)
